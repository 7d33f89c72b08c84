// Package chart is the editor's model of a single chart: an ordered index of
// events plus the rate-altering track and region indices that keep row and
// time positions consistent while the chart is edited.
//
// A Chart is not safe for concurrent use. Independent charts share no
// mutable state and may be built and queried on different goroutines.
package chart

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"git.lost.host/meutraa/stepedit/internal/game"
	"git.lost.host/meutraa/stepedit/internal/rbtree"
)

const (
	DefaultTempo          = 120.0
	DefaultScrollRate     = 1.0
	DefaultTickCount      = 4
	DefaultHitMultiplier  = 1
	DefaultMissMultiplier = 1
	DefaultRating         = 1
)

type Chart struct {
	ID          uuid.UUID
	Type        game.ChartType
	Difficulty  game.Difficulty
	Rating      int
	Name        string
	Description string
	Style       string
	Credit      string
	MusicPath   string
	// DisplayTempo is the tempo text shown on song select, empty for actual.
	DisplayTempo string

	NumInputs  int
	NumPlayers int

	usesChartMusicOffset bool
	musicOffset          float64

	song   *Song
	log    *slog.Logger
	nextID EventID
	byID   map[EventID]*Event

	events       *rbtree.Tree[*Event]
	misc         *rbtree.Tree[*Event]
	rates        *rbtree.Tree[*Event]
	interpolated *rbtree.Tree[*Event]
	stops        *rbtree.Tree[*Event]
	delays       *rbtree.Tree[*Event]
	warps        *rbtree.Tree[*Event]
	fakes        *rbtree.Tree[*Event]
	holds        []*rbtree.Tree[*Event]

	preview        *Event
	lastSecondHint *Event

	mostCommonTempo float64
	minTempo        float64
	maxTempo        float64
}

func newChart(env Env, song *Song, chartType game.ChartType) (*Chart, error) {
	props, ok := chartType.Properties()
	if !ok {
		return nil, fmt.Errorf("unknown chart type %q", chartType)
	}
	c := &Chart{
		ID:           uuid.New(),
		Type:         chartType,
		Rating:       DefaultRating,
		NumInputs:    props.NumInputs,
		NumPlayers:   props.NumPlayers,
		song:         song,
		log:          env.logger().With(slog.String("chart", string(chartType))),
		byID:         map[EventID]*Event{},
		events:       rbtree.New(compareEvents),
		misc:         rbtree.New(compareEvents),
		rates:        rbtree.New(compareEvents),
		interpolated: rbtree.New(compareEvents),
		stops:        rbtree.New(compareEvents),
		delays:       rbtree.New(compareEvents),
		warps:        rbtree.New(compareEvents),
		fakes:        rbtree.New(compareEvents),
		holds:        make([]*rbtree.Tree[*Event], props.NumInputs),
	}
	for lane := range c.holds {
		c.holds[lane] = rbtree.New(compareEvents)
	}
	return c, nil
}

// New builds a chart from a parsed event stream. song may be nil for a
// chart with no owner, in which case it has no preview or last second hint.
func New(env Env, song *Song, doc game.Chart) (*Chart, error) {
	c, err := newChart(env, song, doc.Type)
	if nil != err {
		return nil, err
	}
	c.Difficulty = doc.Difficulty
	c.Rating = doc.Rating
	c.Name = doc.Name
	c.Description = doc.Description
	c.Style = doc.Style
	c.Credit = doc.Credit
	c.MusicPath = doc.MusicPath
	c.DisplayTempo = doc.DisplayTempo
	if doc.MusicOffset != nil {
		c.usesChartMusicOffset = true
		c.musicOffset = *doc.MusicOffset
	}

	events := make([]*Event, 0, len(doc.Events))
	for i := range doc.Events {
		e := doc.Events[i]
		if e.Kind.IsSynthetic() {
			continue
		}
		if e.Kind.IsLaneNote() && (e.Lane < 0 || e.Lane >= c.NumInputs) {
			return nil, fmt.Errorf("event %d (%v): lane out of range for %v", i, e, c.Type)
		}
		events = append(events, c.NewEvent(e))
	}
	c.setUp(events)
	return c, nil
}

// NewEmpty creates a chart holding only the mandatory starter events, using
// the song's preferred starting tempo and time signature.
func NewEmpty(env Env, song *Song, chartType game.ChartType) (*Chart, error) {
	c, err := newChart(env, song, chartType)
	if nil != err {
		return nil, err
	}
	tempo, ts := DefaultTempo, game.DefaultTimeSignature
	if song != nil {
		tempo = song.BestChartStartingTempo()
		ts = song.BestChartStartingTimeSignature()
	}
	c.setUp([]*Event{
		c.NewEvent(game.Event{Kind: game.KindTimeSignature, Numerator: ts.Numerator, Denominator: ts.Denominator}),
		c.NewEvent(game.Event{Kind: game.KindTempo, BPM: tempo}),
		c.NewEvent(game.Event{Kind: game.KindScrollRate, Rate: DefaultScrollRate}),
		c.NewEvent(game.Event{Kind: game.KindInterpolatedScrollRate, Rate: DefaultScrollRate}),
		c.NewEvent(game.Event{Kind: game.KindTickCount, Ticks: DefaultTickCount}),
		c.NewEvent(game.Event{Kind: game.KindMultipliers, HitMultiplier: DefaultHitMultiplier, MissMultiplier: DefaultMissMultiplier}),
	})
	return c, nil
}

func (c *Chart) setUp(events []*Event) {
	b := newBatch()
	for _, e := range events {
		if c.insert(e) {
			b.touch(&e.data)
		}
	}
	b.rateDirty = true
	c.finish(b, events)
}

// NewEvent wraps data in an event owned by c. The event is not part of the
// chart until it is passed to AddEvents.
func (c *Chart) NewEvent(data game.Event) *Event {
	c.nextID++
	return &Event{id: c.nextID, chart: c, data: data, canBeDeleted: true}
}

// Flatten produces the persisted shape of the chart.
func (c *Chart) Flatten() game.Chart {
	doc := game.Chart{
		Type:         c.Type,
		Difficulty:   c.Difficulty,
		Rating:       c.Rating,
		Name:         c.Name,
		Description:  c.Description,
		Style:        c.Style,
		Credit:       c.Credit,
		MusicPath:    c.MusicPath,
		DisplayTempo: c.DisplayTempo,
		Events:       make([]game.Event, 0, c.events.Len()),
	}
	if c.usesChartMusicOffset {
		offset := c.musicOffset
		doc.MusicOffset = &offset
	}
	for it := c.events.Min(); it.Valid(); it = it.Next() {
		if e := it.Item(); !e.data.Kind.IsSynthetic() {
			doc.Events = append(doc.Events, e.data)
		}
	}
	game.Sort(doc.Events)
	return doc
}

// Len returns the number of events in the chart, synthetic ones included.
func (c *Chart) Len() int { return c.events.Len() }

// Events returns every event in canonical order.
func (c *Chart) Events() []*Event { return c.events.Items() }

// MiscEvents returns the events shown in the misc overlay, in order.
func (c *Chart) MiscEvents() []*Event { return c.misc.Items() }

// RateAlteringEvents returns the rate-altering track in order.
func (c *Chart) RateAlteringEvents() []*Event { return c.rates.Items() }

// InterpolatedScrollRateEvents returns the interpolated scroll rates in order.
func (c *Chart) InterpolatedScrollRateEvents() []*Event { return c.interpolated.Items() }

// Event looks up an event of this chart by ID.
func (c *Chart) Event(id EventID) *Event { return c.byID[id] }

// Contains reports whether e is currently part of the chart.
func (c *Chart) Contains(e *Event) bool {
	return e != nil && c.byID[e.id] == e
}

// HoldPartner returns the other end of a hold, or nil.
func (c *Chart) HoldPartner(e *Event) *Event {
	if e == nil || e.holdPartner == 0 {
		return nil
	}
	return c.byID[e.holdPartner]
}

func (c *Chart) MostCommonTempo() float64 { return c.mostCommonTempo }
func (c *Chart) MinTempo() float64        { return c.minTempo }
func (c *Chart) MaxTempo() float64        { return c.maxTempo }

// Preview returns the synthetic preview region event, or nil.
func (c *Chart) Preview() *Event { return c.preview }

// LastSecondHint returns the synthetic last second hint event, or nil.
func (c *Chart) LastSecondHint() *Event { return c.lastSecondHint }

func (c *Chart) Song() *Song { return c.song }

func (c *Chart) UsesChartMusicOffset() bool { return c.usesChartMusicOffset }

// SetUsesChartMusicOffset switches between the chart and the song offset.
func (c *Chart) SetUsesChartMusicOffset(uses bool) {
	if c.usesChartMusicOffset == uses {
		return
	}
	c.usesChartMusicOffset = uses
	c.refreshSynthetic()
}

// SetMusicOffset sets the chart's own offset.
func (c *Chart) SetMusicOffset(offset float64) {
	if c.musicOffset == offset {
		return
	}
	c.musicOffset = offset
	c.refreshSynthetic()
}

// MusicOffset returns the offset in effect for this chart.
func (c *Chart) MusicOffset() float64 {
	if c.usesChartMusicOffset {
		return c.musicOffset
	}
	if c.song != nil {
		return c.song.MusicOffset()
	}
	return 0
}

func (c *Chart) String() string {
	name := c.Name
	if name == "" {
		name = c.Description
	}
	if name == "" {
		return fmt.Sprintf("%v %v [%v]", c.Type, c.Difficulty, c.Rating)
	}
	return fmt.Sprintf("%v %v [%v] %v", c.Type, c.Difficulty, c.Rating, name)
}

// Compare orders charts within a song: by chart type, difficulty, rating,
// name, description and finally event count. Charts of unknown types sort
// last and empty strings sort after non-empty ones.
func Compare(a, b *Chart) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	pa, aok := a.Type.Properties()
	pb, bok := b.Type.Properties()
	if aok != bok {
		if aok {
			return -1
		}
		return 1
	}
	if aok {
		if c := cmp.Compare(pa.Order, pb.Order); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Difficulty, b.Difficulty); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rating, b.Rating); c != 0 {
		return c
	}
	if c := compareStrings(a.Name, b.Name); c != 0 {
		return c
	}
	if c := compareStrings(a.Description, b.Description); c != 0 {
		return c
	}
	return cmp.Compare(a.events.Len(), b.events.Len())
}

func compareStrings(a, b string) int {
	if (a == "") != (b == "") {
		if a == "" {
			return 1
		}
		return -1
	}
	return strings.Compare(a, b)
}
