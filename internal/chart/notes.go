package chart

import "git.lost.host/meutraa/stepedit/internal/game"

// PreviousInputNotes returns, for every lane, the last tap, hold start or
// hold end before pos. Lanes without one are nil.
func (c *Chart) PreviousInputNotes(pos float64) []*Event {
	notes := make([]*Event, c.NumInputs)
	found := 0
	it := c.events.FindGEFunc(func(e *Event) int {
		if float64(e.data.Row) < pos {
			return -1
		}
		return 0
	})
	for it = it.Prev(); it.Valid() && found < c.NumInputs; it = it.Prev() {
		if c.collectInputNote(notes, it.Item()) {
			found++
		}
	}
	return notes
}

// NextInputNotes returns, for every lane, the first tap, hold start or hold
// end after pos. Lanes without one are nil.
func (c *Chart) NextInputNotes(pos float64) []*Event {
	notes := make([]*Event, c.NumInputs)
	found := 0
	it := c.events.FindGEFunc(func(e *Event) int {
		if float64(e.data.Row) <= pos {
			return -1
		}
		return 0
	})
	for ; it.Valid() && found < c.NumInputs; it = it.Next() {
		if c.collectInputNote(notes, it.Item()) {
			found++
		}
	}
	return notes
}

func (c *Chart) collectInputNote(notes []*Event, e *Event) bool {
	if !e.data.Kind.IsInputNote() {
		return false
	}
	lane := e.data.Lane
	if lane < 0 || lane >= len(notes) || notes[lane] != nil {
		return false
	}
	notes[lane] = e
	return true
}

// NoteCounts summarises the lane notes of the chart.
func (c *Chart) NoteCounts() game.NoteCounts {
	data := make([]game.Event, 0, c.events.Len())
	for it := c.events.Min(); it.Valid(); it = it.Next() {
		data = append(data, it.Item().data)
	}
	return game.CountNotes(data)
}
