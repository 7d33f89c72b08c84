//go:build !debug

package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.lost.host/meutraa/stepedit/internal/game"
)

func TestInvariantViolationsAreIgnored(t *testing.T) {
	t.Parallel()

	c := newTestChart(t, timeSignature(0, 4, 4), tempo(0, 120), tap(48, 0))
	note := find(c, game.KindTap, 48)
	require.NotNil(t, note)

	require.Len(t, c.DeleteEvents([]*Event{note}), 1)
	assert.Empty(t, c.DeleteEvents([]*Event{note}))
	assert.Nil(t, c.SetTempo(note, 140))
	assert.Equal(t, 2, c.Len())

	ts := find(c, game.KindTimeSignature, 0)
	assert.False(t, c.Restore(ts, ts.Data()))
	assert.False(t, c.Restore(note, tempo(48, 140)))
	assert.True(t, c.Restore(note, tap(96, 2)))
	assert.Empty(t, c.AddEvents([]*Event{note}))
	assert.Equal(t, 96, note.Row())
	assert.Equal(t, 2, note.Lane())
	assert.Equal(t, 3, c.Len())
}
