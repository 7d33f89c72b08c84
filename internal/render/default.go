package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"git.lost.host/meutraa/stepedit/internal/chart"
	"git.lost.host/meutraa/stepedit/internal/game"
	"git.lost.host/meutraa/stepedit/internal/store"
	"git.lost.host/meutraa/stepedit/internal/theme"
	"git.lost.host/meutraa/stepedit/internal/validate"
)

type DefaultRenderer struct {
	Theme theme.Theme
	// Width limits table rows, 0 for unlimited.
	Width int

	now func() time.Time
}

// NewDefaultRenderer limits tables to the width of out when it is a
// terminal.
func NewDefaultRenderer(th theme.Theme, out *os.File) *DefaultRenderer {
	r := &DefaultRenderer{Theme: th, now: time.Now}
	fd := int(out.Fd())
	if term.IsTerminal(fd) {
		if columns, _, err := term.GetSize(fd); nil == err {
			r.Width = columns
		}
	}
	return r
}

func (r *DefaultRenderer) newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	if r.Width > 0 {
		tbl.SetAllowedRowLength(r.Width)
	}
	return tbl
}

func (r *DefaultRenderer) Charts(w io.Writer, song *chart.Song) error {
	if song.Title != "" {
		if _, err := fmt.Fprintf(w, "%s - %s\n", song.Title, song.Artist); nil != err {
			return err
		}
	}

	tbl := r.newTable(w)
	tbl.AppendHeader(table.Row{"#", "Type", "Difficulty", "Rating", "Name", "Steps", "Holds", "Rolls", "Mines", "Tempo", "Length", "Events"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
		{Number: 12, Align: text.AlignRight},
	})
	steps := 0
	for i, c := range song.Charts() {
		counts := c.NoteCounts()
		steps += counts.Steps()
		tbl.AppendRow(table.Row{
			i,
			c.Type,
			r.Theme.Difficulty(c.Difficulty, c.Difficulty.String()),
			c.Rating,
			c.Name,
			humanize.Comma(int64(counts.Steps())),
			humanize.Comma(int64(counts.Holds)),
			humanize.Comma(int64(counts.Rolls)),
			humanize.Comma(int64(counts.Mines)),
			tempoRange(c),
			formatTime(c.EndTime(false) - c.StartTime(false)),
			humanize.Comma(int64(c.Len())),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", "Total", humanize.Comma(int64(steps))})
	tbl.Render()
	return nil
}

func (r *DefaultRenderer) Events(w io.Writer, c *chart.Chart, events []*chart.Event) error {
	tbl := r.newTable(w)
	tbl.AppendHeader(table.Row{"Row", "Position", "Time", "Kind", "Lane", "Value"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, e := range events {
		kind := e.Kind().String()
		position := e.MetricPosition()
		if e.Kind().IsLaneNote() {
			kind = r.Theme.Note(position, kind)
		} else {
			kind = r.Theme.Kind(e.Kind(), kind)
		}
		lane := ""
		if e.Lane() >= 0 {
			lane = strconv.Itoa(e.Lane())
		}
		tbl.AppendRow(table.Row{e.Row(), position.String(), formatTime(e.Time()), kind, lane, value(e)})
	}
	tbl.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%s events", humanize.Comma(int64(len(events))))})
	tbl.Render()
	return nil
}

func (r *DefaultRenderer) History(w io.Writer, records []store.Record) error {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	tbl := r.newTable(w)
	tbl.AppendHeader(table.Row{"ID", "Saved", "Charts", "Size", "Sum"})
	for _, record := range records {
		tbl.AppendRow(table.Row{
			record.ID.String(),
			humanize.RelTime(record.SavedAt, now(), "ago", "from now"),
			record.Charts,
			humanize.Bytes(uint64(record.Size)),
			record.Sum[:min(len(record.Sum), 12)],
		})
	}
	tbl.Render()
	return nil
}

func tempoRange(c *chart.Chart) string {
	if c.DisplayTempo != "" {
		return c.DisplayTempo
	}
	lo, hi := c.MinTempo(), c.MaxTempo()
	if lo == hi {
		return validate.FormatTempo(lo)
	}
	return fmt.Sprintf("%s-%s", strconv.FormatFloat(lo, 'g', 9, 64), validate.FormatTempo(hi))
}

// value formats the payload of an event the way edit controls show it.
func value(e *chart.Event) string {
	d := e.Data()
	switch d.Kind {
	case game.KindTempo:
		return validate.FormatTempo(d.BPM)
	case game.KindStop, game.KindDelay, game.KindFakeSegment, game.KindPreview:
		return validate.FormatSeconds(e.Duration())
	case game.KindWarp:
		return strconv.Itoa(d.LengthRows) + validate.RowsSuffix
	case game.KindTimeSignature:
		return fmt.Sprintf("%d/%d", d.Numerator, d.Denominator)
	case game.KindScrollRate:
		return validate.FormatScrollRate(d.Rate)
	case game.KindInterpolatedScrollRate:
		if d.PeriodTimeBased {
			return fmt.Sprintf("%s over %s", validate.FormatScrollRate(d.Rate), validate.FormatSeconds(game.ToSeconds(d.PeriodMicros)))
		}
		return fmt.Sprintf("%s over %d%s", validate.FormatScrollRate(d.Rate), d.PeriodRows, validate.RowsSuffix)
	case game.KindTickCount:
		return strconv.Itoa(d.Ticks)
	case game.KindMultipliers:
		return validate.FormatMultipliers(d.HitMultiplier, d.MissMultiplier)
	case game.KindLabel:
		return d.Text
	case game.KindHoldStart:
		if d.Roll {
			return "roll"
		}
	}
	return ""
}

// formatTime renders seconds as [-]m:ss.mmm.
func formatTime(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	millis := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%s%d:%02d.%03d", sign, millis/60000, millis/1000%60, millis%1000)
}
