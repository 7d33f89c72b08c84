package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSameRow(t *testing.T) {
	t.Parallel()

	events := []Event{
		{Kind: KindTimeSignature, Row: 0, Numerator: 4, Denominator: 4},
		{Kind: KindStop, Row: 0, LengthMicros: -500000},
		{Kind: KindTap, Row: 0, Lane: 3},
		{Kind: KindWarp, Row: 0, LengthRows: 4},
		{Kind: KindStop, Row: 0, LengthMicros: 500000},
		{Kind: KindTap, Row: 0, Lane: 1},
		{Kind: KindDelay, Row: 0, LengthMicros: 1},
		{Kind: KindTempo, Row: 0, BPM: 120},
		{Kind: KindTap, Row: -48, Lane: 0},
	}
	Sort(events)

	var got []string
	for _, e := range events {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{
		"tap@-48 lane 0",
		"tempo@0 120bpm",
		"delay@0 1e-06s",
		"stop@0 0.5s",
		"tap@0 lane 1",
		"tap@0 lane 3",
		"stop@0 -0.5s",
		"warp@0 4 rows",
		"time-signature@0 4/4",
	}, got)
}

func TestNearestMeasureBoundaryRow(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		ts       TimeSignature
		row      int
		expected int
	}{
		"on boundary":      {DefaultTimeSignature, 192, 192},
		"just after":       {DefaultTimeSignature, 200, 192},
		"just before":      {DefaultTimeSignature, 380, 384},
		"halfway":          {DefaultTimeSignature, 96, 192},
		"three four":       {TimeSignature{Numerator: 3, Denominator: 4}, 150, 144},
		"offset anchor":    {TimeSignature{Row: 144, Numerator: 4, Denominator: 4}, 300, 336},
		"seven eight":      {TimeSignature{Numerator: 7, Denominator: 8}, 170, 168},
		"before the start": {TimeSignature{Row: 192, Numerator: 4, Denominator: 4}, 10, 0},
	}

	for name, c := range cases {
		assert.Equal(t, c.expected, c.ts.NearestMeasureBoundaryRow(c.row), name)
	}
}

func TestMetricPosition(t *testing.T) {
	t.Parallel()

	ts := TimeSignature{Row: 192, Numerator: 3, Denominator: 4, Measure: 1}
	assert.Equal(t, MetricPosition{Measure: 1, Beat: 0, Numerator: 0, Denominator: 1}, ts.MetricPosition(192))
	assert.Equal(t, MetricPosition{Measure: 1, Beat: 1, Numerator: 1, Denominator: 2}, ts.MetricPosition(192+72))
	assert.Equal(t, MetricPosition{Measure: 2, Beat: 0, Numerator: 1, Denominator: 3}, ts.MetricPosition(192+144+16))
	assert.Equal(t, "2:0+1/3", ts.MetricPosition(192+144+16).String())
	assert.Equal(t, 0, ts.MeasureAt(191))
}

func TestTimeSignatureValid(t *testing.T) {
	t.Parallel()

	assert.True(t, DefaultTimeSignature.Valid())
	assert.Equal(t, 48, DefaultTimeSignature.RowsPerBeat())
	assert.Equal(t, 24, TimeSignature{Numerator: 5, Denominator: 8}.RowsPerBeat())
	assert.False(t, TimeSignature{Numerator: 0, Denominator: 4}.Valid())
	assert.False(t, TimeSignature{Numerator: 4, Denominator: 0}.Valid())
	assert.False(t, TimeSignature{Numerator: 4, Denominator: 512}.Valid())
}

func TestKindText(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var parsed Kind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("hold")
	assert.Error(t, err)
	assert.True(t, KindStop.IsRateAltering())
	assert.False(t, KindInterpolatedScrollRate.IsRateAltering())
	assert.Equal(t, -1, (&Event{Kind: KindTempo, Lane: 2}).GetLane())
}

func TestCountNotes(t *testing.T) {
	t.Parallel()

	counts := CountNotes([]Event{
		{Kind: KindTap},
		{Kind: KindTap},
		{Kind: KindHoldStart},
		{Kind: KindHoldEnd},
		{Kind: KindHoldStart, Roll: true},
		{Kind: KindHoldEnd},
		{Kind: KindMine},
		{Kind: KindTempo},
	})
	assert.Equal(t, NoteCounts{Taps: 2, Holds: 1, Rolls: 1, Mines: 1}, counts)
	assert.Equal(t, 4, counts.Steps())
}

func TestDifficulty(t *testing.T) {
	t.Parallel()

	d, err := ParseDifficulty("Challenge")
	require.NoError(t, err)
	assert.Equal(t, Challenge, d)
	_, err = ParseDifficulty("Expert")
	assert.Error(t, err)

	p, ok := DanceSingle.Properties()
	require.True(t, ok)
	assert.Equal(t, 4, p.NumInputs)
	_, ok = ChartType("kb7-single").Properties()
	assert.False(t, ok)
}
