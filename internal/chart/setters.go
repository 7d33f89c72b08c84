package chart

import (
	"log/slog"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// Field setters. Each returns the events deleted as a consequence of the
// change, which is non-empty only when a time signature lost its measure
// boundary.

func (c *Chart) expectKind(e *Event, kinds ...game.Kind) bool {
	if !c.assert(c.Contains(e), "event not in chart", "event", e) {
		return false
	}
	for _, k := range kinds {
		if e.data.Kind == k {
			return true
		}
	}
	return c.assert(false, "setter does not apply to event", "event", e)
}

// SetTempo ignores non-positive tempos.
func (c *Chart) SetTempo(e *Event, bpm float64) []*Event {
	if !c.expectKind(e, game.KindTempo) {
		return nil
	}
	if bpm <= 0 {
		c.log.Warn("ignoring non-positive tempo", slog.Int("row", e.data.Row), slog.Float64("bpm", bpm))
		return nil
	}
	d := e.data
	d.BPM = bpm
	return c.Update(e, d)
}

// SetStopLength changes a stop's length. A change of sign moves the stop to
// the other side of the notes on its row.
func (c *Chart) SetStopLength(e *Event, micros int64) []*Event {
	if !c.expectKind(e, game.KindStop) {
		return nil
	}
	d := e.data
	d.LengthMicros = micros
	return c.Update(e, d)
}

func (c *Chart) SetDelayLength(e *Event, micros int64) []*Event {
	if !c.expectKind(e, game.KindDelay) {
		return nil
	}
	d := e.data
	d.LengthMicros = micros
	return c.Update(e, d)
}

// SetWarpLength ignores negative lengths.
func (c *Chart) SetWarpLength(e *Event, rows int) []*Event {
	if !c.expectKind(e, game.KindWarp) {
		return nil
	}
	if rows < 0 {
		c.log.Warn("ignoring negative warp length", slog.Int("row", e.data.Row), slog.Int("rows", rows))
		return nil
	}
	d := e.data
	d.LengthRows = rows
	return c.Update(e, d)
}

func (c *Chart) SetScrollRate(e *Event, rate float64) []*Event {
	if !c.expectKind(e, game.KindScrollRate) {
		return nil
	}
	d := e.data
	d.Rate = rate
	return c.Update(e, d)
}

// SetTimeSignature may delete later time signatures which no longer fall on
// a measure boundary.
func (c *Chart) SetTimeSignature(e *Event, numerator, denominator int) []*Event {
	if !c.expectKind(e, game.KindTimeSignature) {
		return nil
	}
	if !(game.TimeSignature{Numerator: numerator, Denominator: denominator}).Valid() {
		c.log.Warn("ignoring invalid time signature", slog.Int("row", e.data.Row),
			slog.Int("numerator", numerator), slog.Int("denominator", denominator))
		return nil
	}
	d := e.data
	d.Numerator = numerator
	d.Denominator = denominator
	return c.Update(e, d)
}

// SetInterpolatedScrollRate updates the target rate and period, relinking
// the previous rate of the following event.
func (c *Chart) SetInterpolatedScrollRate(e *Event, rate float64, periodRows int, periodMicros int64, timeBased bool) []*Event {
	if !c.expectKind(e, game.KindInterpolatedScrollRate) {
		return nil
	}
	d := e.data
	d.Rate = rate
	d.PeriodRows = periodRows
	d.PeriodMicros = periodMicros
	d.PeriodTimeBased = timeBased
	return c.Update(e, d)
}

func (c *Chart) SetFakeLength(e *Event, seconds float64) []*Event {
	if !c.expectKind(e, game.KindFakeSegment) {
		return nil
	}
	d := e.data
	d.LengthSeconds = seconds
	return c.Update(e, d)
}

func (c *Chart) SetTickCount(e *Event, ticks int) []*Event {
	if !c.expectKind(e, game.KindTickCount) {
		return nil
	}
	d := e.data
	d.Ticks = ticks
	return c.Update(e, d)
}

func (c *Chart) SetMultipliers(e *Event, hit, miss int) []*Event {
	if !c.expectKind(e, game.KindMultipliers) {
		return nil
	}
	d := e.data
	d.HitMultiplier = hit
	d.MissMultiplier = miss
	return c.Update(e, d)
}

func (c *Chart) SetLabel(e *Event, text string) []*Event {
	if !c.expectKind(e, game.KindLabel) {
		return nil
	}
	d := e.data
	d.Text = text
	return c.Update(e, d)
}

// SetHoldRoll switches a hold between a hold and a roll.
func (c *Chart) SetHoldRoll(e *Event, roll bool) []*Event {
	if !c.expectKind(e, game.KindHoldStart) {
		return nil
	}
	d := e.data
	d.Roll = roll
	return c.Update(e, d)
}

// MoveEvent changes the row of an event.
func (c *Chart) MoveEvent(e *Event, row int) []*Event {
	if !c.assert(c.Contains(e), "event not in chart", "event", e) {
		return nil
	}
	d := e.data
	d.Row = row
	return c.Update(e, d)
}
