// Package action wraps chart mutations in reversible operations so an editor
// can undo and redo them.
package action

import (
	"fmt"
	"slices"

	"git.lost.host/meutraa/stepedit/internal/chart"
	"git.lost.host/meutraa/stepedit/internal/game"
)

type Action interface {
	Do(c *chart.Chart)
	Undo(c *chart.Chart)
	String() string
}

// AddEvents adds events to a chart. Time signatures which stop falling on a
// measure boundary are deleted by the chart and restored on Undo.
type AddEvents struct {
	events     []*chart.Event
	casualties []*chart.Event
}

func NewAddEvents(events ...*chart.Event) *AddEvents {
	return &AddEvents{events: events}
}

func (a *AddEvents) Do(c *chart.Chart) {
	a.casualties = a.casualties[:0]
	for _, e := range c.AddEvents(a.events) {
		// an added time signature can itself be off the measure grid
		if !slices.Contains(a.events, e) {
			a.casualties = append(a.casualties, e)
		}
	}
}

func (a *AddEvents) Undo(c *chart.Chart) {
	present := make([]*chart.Event, 0, len(a.events))
	for _, e := range a.events {
		if c.Contains(e) {
			present = append(present, e)
		}
	}
	c.DeleteEvents(present)
	if len(a.casualties) > 0 {
		c.AddEvents(a.casualties)
	}
	a.casualties = nil
}

func (a *AddEvents) String() string {
	return describe("Add", a.events)
}

// DeleteEvents deletes events and, with them, their hold partners.
type DeleteEvents struct {
	events  []*chart.Event
	deleted []*chart.Event
}

func NewDeleteEvents(events ...*chart.Event) *DeleteEvents {
	return &DeleteEvents{events: events}
}

func (a *DeleteEvents) Do(c *chart.Chart) {
	a.deleted = c.DeleteEvents(a.events)
}

func (a *DeleteEvents) Undo(c *chart.Chart) {
	if len(a.deleted) > 0 {
		c.AddEvents(a.deleted)
	}
	a.deleted = nil
}

func (a *DeleteEvents) String() string {
	return describe("Delete", a.events)
}

// UpdateEvent replaces the payload of one event.
type UpdateEvent struct {
	event         *chart.Event
	before, after game.Event
	casualties    []*chart.Event
}

func NewUpdateEvent(e *chart.Event, after game.Event) *UpdateEvent {
	return &UpdateEvent{event: e, before: e.Data(), after: after}
}

func (a *UpdateEvent) Do(c *chart.Chart) {
	a.casualties = c.Update(a.event, a.after)
}

// Undo puts the event back as it was. When the update deleted the event
// itself, as with a time signature moved off the measure grid, it is
// restored and re-added with the other casualties.
func (a *UpdateEvent) Undo(c *chart.Chart) {
	restore := make([]*chart.Event, 0, len(a.casualties)+1)
	for _, e := range a.casualties {
		if e != a.event {
			restore = append(restore, e)
		}
	}
	if c.Contains(a.event) {
		c.Update(a.event, a.before)
	} else if c.Restore(a.event, a.before) {
		restore = append(restore, a.event)
	}
	if len(restore) > 0 {
		c.AddEvents(restore)
	}
	a.casualties = nil
}

func (a *UpdateEvent) String() string {
	return fmt.Sprintf("Update %v to %v", a.before.String(), a.after.String())
}

func describe(verb string, events []*chart.Event) string {
	switch len(events) {
	case 0:
		return verb + " nothing"
	case 1:
		return fmt.Sprintf("%s %v", verb, events[0])
	}
	return fmt.Sprintf("%s %d events", verb, len(events))
}
