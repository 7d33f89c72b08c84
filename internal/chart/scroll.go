package chart

import (
	"git.lost.host/meutraa/stepedit/internal/game"
)

// ScrollRateAt evaluates the interpolated scroll rate at a position and
// time. Each interpolated event ramps linearly from the previous rate to its
// own over a period measured in rows, or in time when PeriodTimeBased is set.
func (c *Chart) ScrollRateAt(pos float64, t float64) float64 {
	it := c.interpolated.FindLEFunc(func(e *Event) int {
		if float64(e.data.Row) <= pos {
			return -1
		}
		return 1
	})
	if !it.Valid() {
		first := c.interpolated.Min()
		if !first.Valid() {
			return DefaultScrollRate
		}
		return first.Item().previousScrollRate
	}

	e := it.Item()
	d := &e.data
	var progress float64
	switch {
	case d.PeriodTimeBased && d.PeriodMicros > 0:
		progress = (t - e.time) / game.ToSeconds(d.PeriodMicros)
	case !d.PeriodTimeBased && d.PeriodRows > 0:
		progress = (pos - float64(d.Row)) / float64(d.PeriodRows)
	default:
		return d.Rate
	}
	if progress >= 1 {
		return d.Rate
	}
	progress = max(0, progress)
	return e.previousScrollRate + (d.Rate-e.previousScrollRate)*progress
}
