package theme

import (
	"github.com/fatih/color"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// DefaultTheme colors event kinds like the editor draws them. Colors are
// disabled when color.NoColor is set.
type DefaultTheme struct{}

func (t *DefaultTheme) Kind(kind game.Kind, s string) string {
	c, ok := kindColors[kind]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

func (t *DefaultTheme) Note(position game.MetricPosition, s string) string {
	return getNoteColor(position.Denominator).Sprint(s)
}

func (t *DefaultTheme) Difficulty(d game.Difficulty, s string) string {
	c, ok := difficultyColors[d]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

var (
	kindColors = map[game.Kind]*color.Color{
		game.KindTempo:                  color.New(color.FgHiGreen),
		game.KindScrollRate:             color.New(color.FgHiCyan),
		game.KindInterpolatedScrollRate: color.New(color.FgCyan),
		game.KindTimeSignature:          color.New(color.FgHiMagenta),
		game.KindTickCount:              color.New(color.FgHiBlack),
		game.KindMultipliers:            color.New(color.FgHiBlack),
		game.KindLabel:                  color.New(color.FgWhite, color.Bold),
		game.KindMine:                   color.New(color.FgHiBlack),
		// region colors
		game.KindStop:           color.RGB(0xF4, 0x52, 0x52),
		game.KindDelay:          color.RGB(0xF4, 0xBC, 0x52),
		game.KindFakeSegment:    color.RGB(0xF4, 0x8C, 0x52),
		game.KindWarp:           color.RGB(0x52, 0xF2, 0xF4),
		game.KindPreview:        color.RGB(0xF4, 0xF4, 0xF4),
		game.KindLastSecondHint: color.New(color.FgHiRed, color.Bold),
	}
	difficultyColors = map[game.Difficulty]*color.Color{
		game.Beginner:  color.New(color.FgHiCyan),
		game.Easy:      color.New(color.FgHiGreen),
		game.Medium:    color.New(color.FgHiYellow),
		game.Hard:      color.New(color.FgHiRed),
		game.Challenge: color.New(color.FgHiBlue),
		game.Edit:      color.New(color.FgWhite),
	}
	// keyed by the denominator of the beat fraction a note sits on
	noteColors = map[int]*color.Color{
		1:  color.RGB(236, 30, 0),    // 1/4 red
		2:  color.RGB(0, 118, 236),   // 1/8 blue
		3:  color.RGB(106, 0, 236),   // 1/12 purple
		4:  color.RGB(236, 195, 0),   // 1/16 yellow
		6:  color.RGB(236, 0, 106),   // 1/24 pink
		8:  color.RGB(236, 128, 0),   // 1/32 orange
		12: color.RGB(173, 236, 236), // 1/48 light blue
		16: color.RGB(0, 236, 128),   // 1/64 green
		48: color.RGB(110, 147, 89),  // 1/192 olive
		-1: color.RGB(106, 106, 106), // other grey
	}
)

func getNoteColor(d int) *color.Color {
	col, ok := noteColors[d]
	if !ok {
		return noteColors[-1]
	}
	return col
}
