package render

import (
	"io"

	"git.lost.host/meutraa/stepedit/internal/chart"
	"git.lost.host/meutraa/stepedit/internal/store"
)

type Renderer interface {
	// Charts writes one summary line per chart of the song.
	Charts(w io.Writer, song *chart.Song) error
	// Events writes a table of events with their positions and times.
	Events(w io.Writer, c *chart.Chart, events []*chart.Event) error
	// History writes the saved versions of a song.
	History(w io.Writer, records []store.Record) error
}
