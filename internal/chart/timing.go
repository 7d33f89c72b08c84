package chart

import (
	"log/slog"
	"math"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// Recompute rebuilds every rate snapshot, event time and the tempo
// statistics from the current set of events. It is run automatically by
// every mutation and is idempotent. Returns deleted time signatures.
func (c *Chart) Recompute() []*Event {
	return c.updateEventTiming()
}

func (c *Chart) updateEventTiming() []*Event {
	// Synthetic events have derived rows which may sort differently once
	// timing changes, so they are recreated from scratch.
	c.removeSynthetic()

	var deleted []*Event
	for {
		invalid := c.cleanRateAlteringEvents()
		if len(invalid) == 0 {
			break
		}
		for _, e := range invalid {
			c.log.Warn("deleting time signature off a measure boundary",
				slog.Int("row", e.data.Row),
				slog.String("signature", game.TimeSignature{Numerator: e.data.Numerator, Denominator: e.data.Denominator}.String()))
			c.remove(e)
		}
		deleted = append(deleted, invalid...)
	}

	c.updateEventTimes()
	c.addSynthetic()
	return deleted
}

// cleanRateAlteringEvents walks the rate-altering track in order and
// rewrites each snapshot. Time signatures that are not on a measure boundary
// of the previous signature are skipped and returned.
func (c *Chart) cleanRateAlteringEvents() []*Event {
	// Rows before the first tempo and scroll rate borrow their values.
	secondsPerRow := 60.0 / DefaultTempo / game.RowsPerBeat
	scrollRate := DefaultScrollRate
	lastTempo := 0.0
	foundTempo, foundScrollRate := false, false
	for it := c.rates.Min(); it.Valid() && !(foundTempo && foundScrollRate); it = it.Next() {
		d := &it.Item().data
		switch {
		case !foundTempo && d.Kind == game.KindTempo && d.BPM > 0:
			secondsPerRow = 60.0 / d.BPM / game.RowsPerBeat
			lastTempo = d.BPM
			foundTempo = true
		case !foundScrollRate && d.Kind == game.KindScrollRate:
			scrollRate = d.Rate
			foundScrollRate = true
		}
	}

	var (
		firstTempo         = true
		firstScrollRate    = true
		firstTimeSignature = true
		timeSignature      = game.DefaultTimeSignature

		t           float64
		warp        int
		stop, delay float64
		previousRow int
		started     bool

		timePerTempo    = map[float64]float64{}
		tempoOrder      []float64
		lastTempoChange float64
		minTempo        = math.MaxFloat64
		maxTempo        = -math.MaxFloat64

		invalid []*Event
	)
	addTempoTime := func(bpm, seconds float64) {
		if _, ok := timePerTempo[bpm]; !ok {
			tempoOrder = append(tempoOrder, bpm)
		}
		timePerTempo[bpm] += seconds
	}

	for it := c.rates.Min(); it.Valid(); it = it.Next() {
		e := it.Item()
		d := &e.data

		if !started {
			t = float64(d.Row) * secondsPerRow
			started = true
		} else if rowDelta := d.Row - previousRow; rowDelta > 0 {
			elapsed := math.Max(0, float64(rowDelta-warp)) * secondsPerRow
			switch {
			case stop > 0:
				t += stop
			case stop < 0:
				elapsed = math.Max(0, elapsed+stop)
			}
			t += delay + elapsed
			delay = 0
			// Negative stops wind back towards zero as rows advance.
			stop = math.Min(0, stop+float64(rowDelta)*secondsPerRow)
			warp = max(0, warp-rowDelta)
		} else {
			t += delay
			delay = 0
		}
		previousRow = d.Row

		canBeDeleted := true
		switch d.Kind {
		case game.KindTempo:
			if !c.assert(d.BPM > 0, "non-positive tempo", "row", d.Row, "bpm", d.BPM) {
				break
			}
			secondsPerRow = 60.0 / d.BPM / game.RowsPerBeat
			minTempo = math.Min(minTempo, d.BPM)
			maxTempo = math.Max(maxTempo, d.BPM)
			if !firstTempo {
				addTempoTime(lastTempo, t-lastTempoChange)
			}
			lastTempoChange = t
			canBeDeleted = !firstTempo
			lastTempo = d.BPM
			firstTempo = false
		case game.KindStop:
			// Overlapping negative stops stack.
			stop += d.StopSeconds()
		case game.KindDelay:
			if d.LengthMicros < 0 {
				stop += d.StopSeconds()
			} else {
				delay += d.StopSeconds()
			}
		case game.KindWarp:
			// Warps do not stack.
			warp = max(warp, d.LengthRows)
		case game.KindScrollRate:
			scrollRate = d.Rate
			canBeDeleted = !firstScrollRate
			firstScrollRate = false
		case game.KindTimeSignature:
			candidate := game.TimeSignature{Row: d.Row, Numerator: d.Numerator, Denominator: d.Denominator}
			valid := candidate.Valid()
			if firstTimeSignature {
				valid = valid && d.Row == 0
			} else {
				valid = valid && d.Row == timeSignature.NearestMeasureBoundaryRow(d.Row)
				candidate.Measure = timeSignature.MeasureAt(d.Row)
			}
			if !valid {
				invalid = append(invalid, e)
				continue
			}
			canBeDeleted = !firstTimeSignature
			timeSignature = candidate
			firstTimeSignature = false
		}

		*e.rate = RateSnapshot{
			Time:               t,
			WarpRowsRemaining:  warp,
			StopTimeRemaining:  stop,
			DelayTimeRemaining: delay,
			ScrollRate:         scrollRate,
			Tempo:              lastTempo,
			RowsPerSecond:      1 / secondsPerRow,
			SecondsPerRow:      secondsPerRow,
			TimeSignature:      timeSignature,
		}
		e.time = t
		e.canBeDeleted = canBeDeleted
	}

	if firstTempo {
		c.mostCommonTempo, c.minTempo, c.maxTempo = 0, 0, 0
		return invalid
	}
	addTempoTime(lastTempo, t-lastTempoChange)

	longest := -1.0
	for _, bpm := range tempoOrder {
		if timePerTempo[bpm] > longest {
			longest = timePerTempo[bpm]
			c.mostCommonTempo = bpm
		}
	}
	c.minTempo = minTempo
	c.maxTempo = maxTempo
	return invalid
}

// updateEventTimes sets the time and metric position of every event from
// the rate-altering event governing its row.
func (c *Chart) updateEventTimes() {
	first := c.rates.Min().Item()
	var governing *Event
	next := c.rates.Min()
	for it := c.events.Min(); it.Valid(); it = it.Next() {
		e := it.Item()
		for next.Valid() && next.Item().data.Row <= e.data.Row {
			governing = next.Item()
			next = next.Next()
		}
		g := governing
		if g == nil {
			g = first
		}
		c.placeWith(e, g)
	}
}

// place sets the time and metric position of a single event.
func (c *Chart) place(e *Event) {
	c.placeWith(e, c.rateForRow(float64(e.data.Row), true))
}

func (c *Chart) placeWith(e *Event, g *Event) {
	row := e.data.Row
	if g == nil {
		e.time = 0
		e.metric = game.DefaultTimeSignature.MetricPosition(row)
		return
	}
	if !e.data.Kind.IsRateAltering() && !e.data.Kind.IsSynthetic() {
		e.time = g.timeAtRow(float64(row))
	}
	e.metric = g.rate.TimeSignature.MetricPosition(row)
}
