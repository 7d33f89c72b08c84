package action

import (
	"log/slog"

	"git.lost.host/meutraa/stepedit/internal/chart"
)

// History is a linear undo stack over one chart. Doing a new action drops
// everything that was undone.
type History struct {
	chart   *chart.Chart
	log     *slog.Logger
	actions []Action
	// index of the next action to redo
	index int
	// index at the last save, -1 when the saved state was dropped
	saved int
	limit int
}

// NewHistory creates a history for c keeping at most limit actions. A limit
// of zero keeps everything.
func NewHistory(c *chart.Chart, logger *slog.Logger, limit int) *History {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &History{chart: c, log: logger, limit: limit}
}

// Do applies a and records it.
func (h *History) Do(a Action) {
	a.Do(h.chart)
	h.log.Debug("do", slog.String("action", a.String()))

	if h.saved > h.index {
		h.saved = -1
	}
	h.actions = append(h.actions[:h.index], a)
	h.index++

	if h.limit > 0 && len(h.actions) > h.limit {
		drop := len(h.actions) - h.limit
		h.actions = h.actions[drop:]
		h.index -= drop
		if h.saved >= 0 {
			h.saved -= drop
			if h.saved < 0 {
				h.saved = -1
			}
		}
	}
}

// Undo reverts the last action. Returns it, or nil if there is nothing to undo.
func (h *History) Undo() Action {
	if h.index == 0 {
		return nil
	}
	h.index--
	a := h.actions[h.index]
	a.Undo(h.chart)
	h.log.Debug("undo", slog.String("action", a.String()))
	return a
}

// Redo reapplies the last undone action. Returns it, or nil if there is
// nothing to redo.
func (h *History) Redo() Action {
	if h.index == len(h.actions) {
		return nil
	}
	a := h.actions[h.index]
	a.Do(h.chart)
	h.index++
	h.log.Debug("redo", slog.String("action", a.String()))
	return a
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.actions) }

// Len is the number of actions that can be undone.
func (h *History) Len() int { return h.index }

// MarkSaved records the current position as the saved state.
func (h *History) MarkSaved() { h.saved = h.index }

// HasUnsavedChanges reports whether the chart differs from the saved state.
func (h *History) HasUnsavedChanges() bool { return h.saved != h.index }
