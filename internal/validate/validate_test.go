package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/stepedit/internal/game"
)

func TestTempo(t *testing.T) {
	t.Parallel()

	for input, expected := range map[string]float64{
		"120":        120,
		"120bpm":     120,
		" 175.5 BPM": 175.5,
		"0.001":      0.001,
	} {
		v, err := Tempo(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, v, input)
	}

	for input, expected := range map[string]error{
		"0":      ErrNotPositive,
		"-60bpm": ErrNotPositive,
		"fast":   ErrSyntax,
		"NaN":    ErrSyntax,
		"":       ErrSyntax,
	} {
		_, err := Tempo(input)
		assert.ErrorIs(t, err, expected, input)
	}
}

func TestSecondsAndScrollRate(t *testing.T) {
	t.Parallel()

	v, err := Seconds("-0.25s")
	require.NoError(t, err)
	assert.Equal(t, -0.25, v)

	v, err = ScrollRate("1.5x")
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	_, err = Seconds("1.5x")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestDenominatorRule(t *testing.T) {
	t.Parallel()

	for _, d := range []int{1, 2, 4, 8, 12, 16, 24, 32, 48, 64, 96, 192} {
		assert.NoError(t, validate.Var(d, "denominator"), d)
	}
	for _, d := range []int{0, -4, 5, 128, 384} {
		assert.Error(t, validate.Var(d, "denominator"), d)
	}
}

func TestTimeSignature(t *testing.T) {
	t.Parallel()

	ts, err := TimeSignature("7/8")
	require.NoError(t, err)
	assert.Equal(t, game.TimeSignature{Numerator: 7, Denominator: 8}, ts)

	for input, expected := range map[string]error{
		"4/0":  ErrInvalidTimeSignature,
		"0/4":  ErrInvalidTimeSignature,
		"4/5":  ErrInvalidTimeSignature,
		"4":    ErrSyntax,
		"a/4":  ErrSyntax,
		"4/4/": ErrSyntax,
	} {
		_, err := TimeSignature(input)
		assert.ErrorIs(t, err, expected, input)
	}
}

func TestIntegers(t *testing.T) {
	t.Parallel()

	hit, miss, err := Multipliers("2/1")
	require.NoError(t, err)
	assert.Equal(t, 2, hit)
	assert.Equal(t, 1, miss)
	_, _, err = Multipliers("-1/1")
	assert.ErrorIs(t, err, ErrNegative)

	ticks, err := TickCount("4")
	require.NoError(t, err)
	assert.Equal(t, 4, ticks)
	_, err = TickCount("-4")
	assert.ErrorIs(t, err, ErrNegative)

	rows, err := WarpRows("48rows")
	require.NoError(t, err)
	assert.Equal(t, 48, rows)
	_, err = WarpRows("1.5")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "120bpm", FormatTempo(120))
	assert.Equal(t, "0.333333333s", FormatSeconds(1.0/3.0))
	assert.Equal(t, "1.5x", FormatScrollRate(1.5))
	assert.Equal(t, "1/1", FormatMultipliers(1, 1))

	v, err := Tempo(FormatTempo(143.25))
	require.NoError(t, err)
	assert.Equal(t, 143.25, v)
}

func TestEvent(t *testing.T) {
	t.Parallel()

	valid := []game.Event{
		{Kind: game.KindTap, Row: 0, Lane: 3},
		{Kind: game.KindTempo, Row: -48, BPM: 60},
		{Kind: game.KindStop, LengthMicros: -500000},
		{Kind: game.KindDelay, LengthMicros: 500000},
		{Kind: game.KindWarp, LengthRows: 0},
		{Kind: game.KindTimeSignature, Numerator: 7, Denominator: 8},
		{Kind: game.KindScrollRate, Rate: -1},
		{Kind: game.KindInterpolatedScrollRate, Rate: 2, PeriodRows: 48},
		{Kind: game.KindTickCount, Ticks: 4},
		{Kind: game.KindMultipliers, HitMultiplier: 1, MissMultiplier: 1},
		{Kind: game.KindLabel, Text: "drop"},
		{Kind: game.KindFakeSegment, LengthSeconds: 1},
	}
	for _, e := range valid {
		assert.NoError(t, Event(e, 4), e.String())
	}

	invalid := map[error]game.Event{
		ErrLaneOutOfRange:       {Kind: game.KindMine, Lane: 4},
		ErrNotPositive:          {Kind: game.KindTempo, BPM: 0},
		ErrNegative:             {Kind: game.KindWarp, LengthRows: -1},
		ErrInvalidTimeSignature: {Kind: game.KindTimeSignature, Numerator: 4, Denominator: 0},
		ErrSynthetic:            {Kind: game.KindPreview},
	}
	for expected, e := range invalid {
		assert.ErrorIs(t, Event(e, 4), expected, e.String())
	}
}

func TestChart(t *testing.T) {
	t.Parallel()

	err := Chart(game.Chart{Type: game.DanceSingle, Events: []game.Event{
		{Kind: game.KindTap, Lane: 0},
		{Kind: game.KindTap, Lane: 9},
		{Kind: game.KindTempo, BPM: -1},
	}})
	assert.ErrorIs(t, err, ErrLaneOutOfRange)
	assert.ErrorIs(t, err, ErrNotPositive)
	assert.ErrorContains(t, err, "event 1")

	assert.NoError(t, Chart(game.Chart{Type: game.PumpSingle, Events: []game.Event{{Kind: game.KindTap, Lane: 4}}}))
	assert.Error(t, Chart(game.Chart{Type: "kb7-single"}))
}
