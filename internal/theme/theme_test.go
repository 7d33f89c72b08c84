package theme

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"git.lost.host/meutraa/stepedit/internal/game"
)

func TestColors(t *testing.T) {
	noColor := color.NoColor
	t.Cleanup(func() { color.NoColor = noColor })

	th := &DefaultTheme{}

	color.NoColor = false
	assert.Contains(t, th.Kind(game.KindStop, "stop"), "\x1b[38;2;244;82;82mstop")
	assert.Equal(t, "tap", th.Kind(game.KindTap, "tap"))
	assert.Contains(t, th.Note(game.MetricPosition{Denominator: 1}, "1"), "\x1b[38;2;236;30;0m1")
	assert.Contains(t, th.Note(game.MetricPosition{Numerator: 1, Denominator: 5}, "5"), "\x1b[38;2;106;106;106m5")
	assert.Contains(t, th.Difficulty(game.Hard, "Hard"), "Hard")
	assert.NotEqual(t, "Hard", th.Difficulty(game.Hard, "Hard"))

	color.NoColor = true
	assert.Equal(t, "stop", th.Kind(game.KindStop, "stop"))
	assert.Equal(t, "Hard", th.Difficulty(game.Hard, "Hard"))
}
