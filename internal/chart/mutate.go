package chart

import (
	"maps"
	"slices"

	"git.lost.host/meutraa/stepedit/internal/game"
	"git.lost.host/meutraa/stepedit/internal/rbtree"
)

// batch collects which derived state a set of inserts and deletes dirtied so
// it can be rebuilt once.
type batch struct {
	rateDirty   bool
	interpDirty bool
	firstsDirty bool
	lanes       map[int]struct{}
}

func newBatch() *batch {
	return &batch{lanes: map[int]struct{}{}}
}

func (b *batch) touch(d *game.Event) {
	switch d.Kind {
	case game.KindTempo, game.KindStop, game.KindDelay, game.KindWarp, game.KindTimeSignature, game.KindScrollRate:
		b.rateDirty = true
	case game.KindInterpolatedScrollRate:
		b.interpDirty = true
	case game.KindTickCount, game.KindMultipliers:
		b.firstsDirty = true
	case game.KindHoldStart, game.KindHoldEnd:
		b.lanes[d.Lane] = struct{}{}
	}
}

// AddEvents inserts events created with NewEvent. Timing is recomputed at
// most once for the whole batch. Returns the events deleted as a
// consequence, which can only be time signatures that no longer fall on a
// measure boundary.
func (c *Chart) AddEvents(events []*Event) []*Event {
	b := newBatch()
	added := make([]*Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		if !c.assert(!e.data.Kind.IsSynthetic(), "synthetic events are managed by the chart", "event", e) {
			continue
		}
		if c.insert(e) {
			b.touch(&e.data)
			added = append(added, e)
		}
	}
	return c.finish(b, added)
}

// Add is AddEvents for a single new event.
func (c *Chart) Add(data game.Event) (*Event, []*Event) {
	e := c.NewEvent(data)
	return e, c.AddEvents([]*Event{e})
}

// DeleteEvents removes events from the chart. Deleting one end of a hold
// deletes the other end too. Returns every deleted event: the requested
// ones, their hold partners and any time signatures invalidated by the
// deletion.
func (c *Chart) DeleteEvents(events []*Event) []*Event {
	targets := make([]*Event, 0, len(events))
	seen := map[EventID]struct{}{}
	appendTarget := func(e *Event) {
		if _, ok := seen[e.id]; ok {
			return
		}
		seen[e.id] = struct{}{}
		targets = append(targets, e)
	}
	for _, e := range events {
		if e == nil || e.data.Kind.IsSynthetic() {
			continue
		}
		appendTarget(e)
		if partner := c.HoldPartner(e); partner != nil {
			appendTarget(partner)
		}
	}

	b := newBatch()
	deleted := make([]*Event, 0, len(targets))
	for _, e := range targets {
		if !c.assert(c.Contains(e), "deleting event not in chart", "event", e) {
			continue
		}
		c.remove(e)
		b.touch(&e.data)
		deleted = append(deleted, e)
	}
	return append(deleted, c.finish(b, nil)...)
}

// Update replaces the payload of e. Changes to the sort key, such as the row
// or the sign of a stop, remove and reinsert the event so every index stays
// ordered. Returns the events deleted as a consequence.
func (c *Chart) Update(e *Event, data game.Event) []*Event {
	if !c.assert(c.Contains(e), "updating event not in chart", "event", e) {
		return nil
	}
	if !c.assert(data.Kind == e.data.Kind, "event kind cannot change", "event", e, "kind", data.Kind) {
		return nil
	}
	if e.data.Kind.IsSynthetic() {
		return nil
	}
	if data.Kind.IsLaneNote() && !c.assert(data.Lane >= 0 && data.Lane < c.NumInputs, "lane out of range", "event", e, "lane", data.Lane) {
		return nil
	}

	b := newBatch()
	b.touch(&e.data)
	if game.Compare(&e.data, &data) != 0 {
		c.remove(e)
		e.data = data
		c.insert(e)
	} else {
		e.data = data
	}
	b.touch(&e.data)
	return c.finish(b, []*Event{e})
}

// Restore resets the payload of e, an event deleted from the chart, so it
// can be added back as it was. It does not insert e.
func (c *Chart) Restore(e *Event, data game.Event) bool {
	if !c.assert(!c.Contains(e), "restoring event still in chart", "event", e) {
		return false
	}
	if !c.assert(data.Kind == e.data.Kind, "event kind cannot change", "event", e, "kind", data.Kind) {
		return false
	}
	e.data = data
	return true
}

func (c *Chart) finish(b *batch, placed []*Event) []*Event {
	for _, lane := range slices.Sorted(maps.Keys(b.lanes)) {
		c.relinkHolds(lane)
	}
	if b.interpDirty {
		c.relinkInterpolated()
	}
	if b.firstsDirty {
		c.refreshFirsts()
	}
	if b.rateDirty {
		return c.updateEventTiming()
	}
	for _, e := range placed {
		if c.Contains(e) {
			c.place(e)
		}
	}
	return nil
}

func (c *Chart) regionTree(kind game.Kind) *rbtree.Tree[*Event] {
	switch kind {
	case game.KindStop:
		return c.stops
	case game.KindDelay:
		return c.delays
	case game.KindWarp:
		return c.warps
	case game.KindFakeSegment:
		return c.fakes
	}
	return nil
}

// insert adds e to every index it belongs to.
func (c *Chart) insert(e *Event) bool {
	if !c.assert(e.chart == c, "event belongs to another chart", "event", e) {
		return false
	}
	if !c.assert(!c.Contains(e), "event already in chart", "event", e) {
		return false
	}
	d := &e.data
	if d.Kind.IsLaneNote() && !c.assert(d.Lane >= 0 && d.Lane < c.NumInputs, "lane out of range", "event", e) {
		return false
	}
	if ok, _ := c.events.Insert(e); !c.assert(ok, "duplicate event", "event", e) {
		return false
	}
	c.byID[e.id] = e

	if e.IsMisc() {
		c.misc.Insert(e)
	}
	if tree := c.regionTree(d.Kind); tree != nil {
		tree.Insert(e)
	}
	switch {
	case d.Kind.IsRateAltering():
		c.rates.Insert(e)
		if e.rate == nil {
			e.rate = &RateSnapshot{}
		}
	case d.Kind == game.KindInterpolatedScrollRate:
		c.interpolated.Insert(e)
	case d.Kind == game.KindHoldStart || d.Kind == game.KindHoldEnd:
		c.holds[d.Lane].Insert(e)
	}
	return true
}

// remove deletes e from every index it belongs to.
func (c *Chart) remove(e *Event) bool {
	d := &e.data
	if !c.assert(c.events.Delete(e), "event missing from event index", "event", e) {
		return false
	}
	delete(c.byID, e.id)

	if e.IsMisc() {
		c.assert(c.misc.Delete(e), "event missing from misc index", "event", e)
	}
	if tree := c.regionTree(d.Kind); tree != nil {
		c.assert(tree.Delete(e), "event missing from region index", "event", e)
	}
	switch {
	case d.Kind.IsRateAltering():
		c.assert(c.rates.Delete(e), "event missing from rate-altering track", "event", e)
	case d.Kind == game.KindInterpolatedScrollRate:
		c.assert(c.interpolated.Delete(e), "event missing from interpolated scroll rate index", "event", e)
	case d.Kind == game.KindHoldStart || d.Kind == game.KindHoldEnd:
		c.assert(c.holds[d.Lane].Delete(e), "event missing from hold index", "event", e)
		e.holdPartner = 0
	}
	return true
}

// relinkHolds pairs every hold start on a lane with the following hold end.
func (c *Chart) relinkHolds(lane int) {
	var open *Event
	for it := c.holds[lane].Min(); it.Valid(); it = it.Next() {
		e := it.Item()
		switch e.data.Kind {
		case game.KindHoldStart:
			if open != nil {
				c.assert(false, "hold start without end", "lane", lane, "row", open.data.Row)
				open.holdPartner = 0
			}
			e.holdPartner = 0
			open = e
		case game.KindHoldEnd:
			if open == nil {
				c.assert(false, "hold end without start", "lane", lane, "row", e.data.Row)
				e.holdPartner = 0
				continue
			}
			open.holdPartner = e.id
			e.holdPartner = open.id
			open = nil
		}
	}
	if open != nil {
		c.assert(false, "hold start without end", "lane", lane, "row", open.data.Row)
	}
}

// relinkInterpolated points every interpolated scroll rate at the rate of
// the one before it. The first one starts from its own rate so positions
// before it scroll at that rate.
func (c *Chart) relinkInterpolated() {
	first := true
	previous := 0.0
	for it := c.interpolated.Min(); it.Valid(); it = it.Next() {
		e := it.Item()
		if first {
			e.previousScrollRate = e.data.Rate
		} else {
			e.previousScrollRate = previous
		}
		e.canBeDeleted = !first
		previous = e.data.Rate
		first = false
	}
}

func (c *Chart) refreshFirsts() {
	seenTickCount, seenMultipliers := false, false
	for it := c.misc.Min(); it.Valid(); it = it.Next() {
		e := it.Item()
		switch e.data.Kind {
		case game.KindTickCount:
			e.canBeDeleted = seenTickCount
			seenTickCount = true
		case game.KindMultipliers:
			e.canBeDeleted = seenMultipliers
			seenMultipliers = true
		}
	}
}
