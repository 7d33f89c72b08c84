package chart

import (
	"cmp"
	"math"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// EventID identifies an event for the lifetime of its chart. IDs are never
// reused, so they are safe to hold across deletions.
type EventID uint64

// Event is an event owned by a Chart. Its row, time and metric position are
// maintained by the chart; payload changes go through the chart setters so
// every index stays consistent.
type Event struct {
	id    EventID
	chart *Chart
	data  game.Event

	time         float64
	metric       game.MetricPosition
	canBeDeleted bool

	// Rate-altering events only.
	rate *RateSnapshot

	// Hold starts and ends.
	holdPartner EventID

	// Interpolated scroll rates only.
	previousScrollRate float64
}

// RateSnapshot is the cumulative rate state in effect at a rate-altering
// event, after the event itself has been applied.
type RateSnapshot struct {
	// Time is when the event's row is reached, before any delay on the row.
	Time               float64
	WarpRowsRemaining  int
	StopTimeRemaining  float64
	DelayTimeRemaining float64
	ScrollRate         float64
	Tempo              float64
	RowsPerSecond      float64
	SecondsPerRow      float64
	TimeSignature      game.TimeSignature
}

func (e *Event) ID() EventID                         { return e.id }
func (e *Event) Kind() game.Kind                     { return e.data.Kind }
func (e *Event) Row() int                            { return e.data.Row }
func (e *Event) Lane() int                           { return e.data.GetLane() }
func (e *Event) Time() float64                       { return e.time }
func (e *Event) MetricPosition() game.MetricPosition { return e.metric }
func (e *Event) IsMisc() bool                        { return e.data.Kind.IsMisc() }

// Data returns a copy of the event payload.
func (e *Event) Data() game.Event { return e.data }

// CanBeDeleted is false for the first tempo, scroll rate, time signature,
// interpolated scroll rate, tick count and multipliers events of a chart.
// It is advisory: the editor uses it to refuse deletions.
func (e *Event) CanBeDeleted() bool {
	if e.data.Kind.IsSynthetic() {
		return false
	}
	return e.canBeDeleted
}

// Snapshot returns the cached rate state of a rate-altering event.
func (e *Event) Snapshot() (RateSnapshot, bool) {
	if e.rate == nil {
		return RateSnapshot{}, false
	}
	return *e.rate, true
}

// PreviousScrollRate is the rate an interpolated scroll rate event starts
// interpolating from.
func (e *Event) PreviousScrollRate() float64 { return e.previousScrollRate }

// Duration returns the length of time based regions in seconds.
func (e *Event) Duration() float64 {
	switch e.data.Kind {
	case game.KindStop, game.KindDelay:
		return e.data.StopSeconds()
	case game.KindFakeSegment, game.KindPreview:
		return e.data.LengthSeconds
	}
	return 0
}

func (e *Event) String() string { return e.data.String() }

func compareEvents(a, b *Event) int {
	if c := game.Compare(&a.data, &b.data); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// timeAtRow extrapolates the time of pos from the snapshot of a rate
// altering event at or before pos. Positions before the event are
// extrapolated backwards at the event's rate.
func (e *Event) timeAtRow(pos float64) float64 {
	s := e.rate
	rel := pos - float64(e.data.Row)
	if rel < 0 {
		return s.Time + rel*s.SecondsPerRow
	}
	t := s.Time + s.DelayTimeRemaining
	if rel == 0 {
		return t
	}
	elapsed := math.Max(0, rel-float64(s.WarpRowsRemaining)) * s.SecondsPerRow
	switch {
	case s.StopTimeRemaining > 0:
		t += s.StopTimeRemaining
	case s.StopTimeRemaining < 0:
		elapsed = math.Max(0, elapsed+s.StopTimeRemaining)
	}
	return t + elapsed
}

// rowAtTime is the inverse of timeAtRow. Times inside a delay or stop map to
// the row of the event.
func (e *Event) rowAtTime(t float64) float64 {
	s := e.rate
	row := float64(e.data.Row)
	if t < s.Time {
		return row + (t-s.Time)*s.RowsPerSecond
	}
	base := s.Time + s.DelayTimeRemaining
	if t <= base {
		return row
	}
	if s.StopTimeRemaining > 0 {
		base += s.StopTimeRemaining
		if t <= base {
			return row
		}
	}
	elapsed := t - base
	if s.StopTimeRemaining < 0 {
		elapsed -= s.StopTimeRemaining
	}
	return row + float64(s.WarpRowsRemaining) + elapsed*s.RowsPerSecond
}
