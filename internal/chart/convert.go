package chart

import (
	"math"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// ActiveRateEventForRow returns the greatest rate-altering event preceding
// pos, or at pos when allowEqual is set. Positions before every event use
// the first event. Returns nil when the track is empty.
func (c *Chart) ActiveRateEventForRow(pos float64, allowEqual bool) *Event {
	return c.rateForRow(pos, allowEqual)
}

// ActiveRateEventForTime is ActiveRateEventForRow keyed by time.
func (c *Chart) ActiveRateEventForTime(t float64, allowEqual bool) *Event {
	return c.rateForTime(t, allowEqual)
}

func (c *Chart) rateForRow(pos float64, allowEqual bool) *Event {
	it := c.rates.FindLEFunc(func(e *Event) int {
		row := float64(e.data.Row)
		if row < pos || (allowEqual && row == pos) {
			return -1
		}
		return 1
	})
	if !it.Valid() {
		it = c.rates.Min()
	}
	return it.Item()
}

func (c *Chart) rateForTime(t float64, allowEqual bool) *Event {
	it := c.rates.FindLEFunc(func(e *Event) int {
		if e.rate.Time < t || (allowEqual && e.rate.Time == t) {
			return -1
		}
		return 1
	})
	if !it.Valid() {
		it = c.rates.Min()
	}
	return it.Item()
}

// RowToTime converts a chart position to seconds. ok is false when the
// chart has no rate-altering events.
func (c *Chart) RowToTime(pos float64) (float64, bool) {
	e := c.rateForRow(pos, true)
	if e == nil {
		return 0, false
	}
	return e.timeAtRow(pos), true
}

// TimeToRow converts seconds to a chart position. Times inside a stop or a
// delay map to the row of the pause. ok is false when the chart has no
// rate-altering events.
func (c *Chart) TimeToRow(t float64) (float64, bool) {
	e := c.rateForTime(t, true)
	if e == nil {
		return 0, false
	}
	return e.rowAtTime(t), true
}

// MetricPositionAt locates a row in measures and beats.
func (c *Chart) MetricPositionAt(row int) game.MetricPosition {
	e := c.rateForRow(float64(row), true)
	if e == nil {
		return game.DefaultTimeSignature.MetricPosition(row)
	}
	return e.rate.TimeSignature.MetricPosition(row)
}

// NearestMeasureBoundaryRow returns the measure boundary closest to row
// under the time signature in effect there.
func (c *Chart) NearestMeasureBoundaryRow(row int) int {
	e := c.rateForRow(float64(row), true)
	if e == nil {
		return 0
	}
	return e.rate.TimeSignature.NearestMeasureBoundaryRow(row)
}

// StartingTempo returns the tempo at row 0.
func (c *Chart) StartingTempo() float64 {
	e := c.rateForRow(0, true)
	if e == nil || e.rate.Tempo <= 0 {
		return DefaultTempo
	}
	return e.rate.Tempo
}

// StartingTimeSignature returns the time signature at row 0.
func (c *Chart) StartingTimeSignature() game.TimeSignature {
	e := c.rateForRow(0, true)
	if e == nil {
		return game.DefaultTimeSignature
	}
	return e.rate.TimeSignature
}

// StartTime returns the time the chart starts at, which is before zero by
// the music offset when withOffset is set.
func (c *Chart) StartTime(withOffset bool) float64 {
	if withOffset {
		return -c.MusicOffset()
	}
	return 0
}

// EndTime returns the time of the last event, not counting synthetic ones,
// or the song's last second hint when that is later.
func (c *Chart) EndTime(withOffset bool) float64 {
	end := 0.0
	if last := c.lastRealEvent(); last != nil {
		end = last.time
	}
	if c.song != nil {
		end = math.Max(end, c.song.LastSecondHint())
	}
	if withOffset {
		end -= c.MusicOffset()
	}
	return end
}

// EndPosition returns the row of the last event, not counting synthetic ones.
func (c *Chart) EndPosition() int {
	if last := c.lastRealEvent(); last != nil {
		return last.data.Row
	}
	return 0
}

func (c *Chart) lastRealEvent() *Event {
	for it := c.events.Max(); it.Valid(); it = it.Prev() {
		if e := it.Item(); !e.data.Kind.IsSynthetic() {
			return e
		}
	}
	return nil
}
