package chart

import (
	"math"

	"git.lost.host/meutraa/stepedit/internal/game"
)

func (c *Chart) removeSynthetic() {
	if c.preview != nil {
		c.remove(c.preview)
		c.preview = nil
	}
	if c.lastSecondHint != nil {
		c.remove(c.lastSecondHint)
		c.lastSecondHint = nil
	}
}

// addSynthetic derives the preview region and last second hint from the
// owning song.
func (c *Chart) addSynthetic() {
	if c.song == nil {
		return
	}
	if c.song.UsesSampleForPreview() {
		t := c.song.SampleStart() + c.MusicOffset()
		c.preview = c.addSyntheticAt(game.Event{Kind: game.KindPreview, LengthSeconds: c.song.SampleLength()}, t)
	}
	if hint := c.song.LastSecondHint(); hint > 0 {
		c.lastSecondHint = c.addSyntheticAt(game.Event{Kind: game.KindLastSecondHint}, hint)
	}
}

func (c *Chart) addSyntheticAt(data game.Event, t float64) *Event {
	pos, ok := c.TimeToRow(t)
	if !ok {
		return nil
	}
	data.Row = int(math.Floor(pos))
	e := c.NewEvent(data)
	if !c.insert(e) {
		return nil
	}
	e.time = t
	e.metric = c.MetricPositionAt(data.Row)
	return e
}

// refreshSynthetic recreates the synthetic events after an offset or song
// change that leaves the rate-altering track untouched.
func (c *Chart) refreshSynthetic() {
	c.removeSynthetic()
	c.addSynthetic()
}
