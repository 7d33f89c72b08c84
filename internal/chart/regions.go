package chart

import (
	"git.lost.host/meutraa/stepedit/internal/rbtree"
)

// RegionsOverlapping returns the stop, delay, fake segment, warp and preview
// regions covering the given row and time, in that order.
func (c *Chart) RegionsOverlapping(row int, t float64) []*Event {
	var regions []*Event
	for _, e := range []*Event{
		c.StopOverlapping(row, t),
		c.DelayOverlapping(row, t),
		c.FakeSegmentOverlapping(row, t),
		c.WarpOverlapping(row, t),
	} {
		if e != nil {
			regions = append(regions, e)
		}
	}
	if c.preview != nil && c.preview.time <= t && c.preview.time+c.preview.Duration() >= t {
		regions = append(regions, c.preview)
	}
	return regions
}

func (c *Chart) StopOverlapping(row int, t float64) *Event {
	return overlappingInTime(c.stops, row, t)
}

func (c *Chart) DelayOverlapping(row int, t float64) *Event {
	return overlappingInTime(c.delays, row, t)
}

func (c *Chart) FakeSegmentOverlapping(row int, t float64) *Event {
	return overlappingInTime(c.fakes, row, t)
}

// WarpOverlapping returns the warp whose rows cover row.
func (c *Chart) WarpOverlapping(row int, t float64) *Event {
	e := greatestPreceding(c.warps, row, t)
	if e != nil && e.data.Row+e.data.LengthRows >= row {
		return e
	}
	return nil
}

func overlappingInTime(tree *rbtree.Tree[*Event], row int, t float64) *Event {
	e := greatestPreceding(tree, row, t)
	if e != nil && e.time+e.Duration() >= t {
		return e
	}
	return nil
}

// greatestPreceding finds the last region starting at or before the given
// row and time.
func greatestPreceding(tree *rbtree.Tree[*Event], row int, t float64) *Event {
	return tree.FindLEFunc(func(e *Event) int {
		if e.data.Row < row || (e.data.Row == row && e.time <= t) {
			return -1
		}
		return 1
	}).Item()
}
