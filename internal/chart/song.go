package chart

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// Song owns a set of charts and the song level timing values their
// synthetic events are derived from.
type Song struct {
	Title     string
	Artist    string
	MusicPath string

	env            Env
	musicOffset    float64
	sampleStart    float64
	sampleLength   float64
	lastSecondHint float64
	previewFile    string
	charts         []*Chart
}

// NewSong creates a song without charts.
func NewSong(env Env, doc game.Song) *Song {
	return &Song{
		Title:          doc.Title,
		Artist:         doc.Artist,
		MusicPath:      doc.MusicPath,
		env:            env,
		musicOffset:    doc.MusicOffset,
		sampleStart:    doc.SampleStart,
		sampleLength:   doc.SampleLength,
		lastSecondHint: doc.LastSecondHint,
		previewFile:    doc.PreviewFile,
	}
}

// LoadSong builds the song and every chart in it. Charts are independent
// so they are built in parallel, at most jobs at a time.
func LoadSong(ctx context.Context, env Env, doc game.Song, jobs int) (*Song, error) {
	song := NewSong(env, doc)
	charts := make([]*Chart, len(doc.Charts))

	g, gCtx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i := range doc.Charts {
		g.Go(func() error {
			if err := gCtx.Err(); nil != err {
				return err
			}
			c, err := New(env, song, doc.Charts[i])
			if nil != err {
				return fmt.Errorf("chart %d: %w", i, err)
			}
			charts[i] = c
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return nil, err
	}
	song.charts = charts
	return song, nil
}

// Charts returns the song's charts in the order they were added.
func (s *Song) Charts() []*Chart { return slices.Clone(s.charts) }

// SortedCharts returns the song's charts ordered by Compare.
func (s *Song) SortedCharts() []*Chart {
	charts := slices.Clone(s.charts)
	slices.SortStableFunc(charts, Compare)
	return charts
}

// AddChart creates an empty chart of the given type.
func (s *Song) AddChart(chartType game.ChartType) (*Chart, error) {
	c, err := NewEmpty(s.env, s, chartType)
	if nil != err {
		return nil, err
	}
	s.charts = append(s.charts, c)
	return c, nil
}

// RemoveChart removes c from the song. Returns false if c is not part of it.
func (s *Song) RemoveChart(c *Chart) bool {
	i := slices.Index(s.charts, c)
	if i < 0 {
		return false
	}
	s.charts = slices.Delete(s.charts, i, i+1)
	c.removeSynthetic()
	c.song = nil
	return true
}

// BestChartStartingTempo is the starting tempo of the first chart, used to
// seed new charts.
func (s *Song) BestChartStartingTempo() float64 {
	if len(s.charts) == 0 {
		return DefaultTempo
	}
	return s.charts[0].StartingTempo()
}

// BestChartStartingTimeSignature is the starting time signature of the
// first chart, used to seed new charts.
func (s *Song) BestChartStartingTimeSignature() game.TimeSignature {
	if len(s.charts) == 0 {
		return game.DefaultTimeSignature
	}
	ts := s.charts[0].StartingTimeSignature()
	return game.TimeSignature{Numerator: ts.Numerator, Denominator: ts.Denominator}
}

func (s *Song) MusicOffset() float64    { return s.musicOffset }
func (s *Song) SampleStart() float64    { return s.sampleStart }
func (s *Song) SampleLength() float64   { return s.sampleLength }
func (s *Song) LastSecondHint() float64 { return s.lastSecondHint }
func (s *Song) PreviewFile() string     { return s.previewFile }

// UsesSampleForPreview reports whether the preview is a region of the song
// audio rather than a separate file.
func (s *Song) UsesSampleForPreview() bool {
	return s.previewFile == ""
}

func (s *Song) SetMusicOffset(offset float64) {
	s.musicOffset = offset
	s.refreshCharts()
}

func (s *Song) SetSampleStart(seconds float64) {
	s.sampleStart = seconds
	s.refreshCharts()
}

func (s *Song) SetSampleLength(seconds float64) {
	s.sampleLength = seconds
	s.refreshCharts()
}

func (s *Song) SetLastSecondHint(seconds float64) {
	s.lastSecondHint = seconds
	s.refreshCharts()
}

func (s *Song) SetPreviewFile(path string) {
	s.previewFile = path
	s.refreshCharts()
}

func (s *Song) refreshCharts() {
	for _, c := range s.charts {
		c.refreshSynthetic()
	}
}

// Flatten produces the persisted shape of the song.
func (s *Song) Flatten() game.Song {
	doc := game.Song{
		Title:          s.Title,
		Artist:         s.Artist,
		MusicPath:      s.MusicPath,
		MusicOffset:    s.musicOffset,
		SampleStart:    s.sampleStart,
		SampleLength:   s.sampleLength,
		LastSecondHint: s.lastSecondHint,
		PreviewFile:    s.previewFile,
		Charts:         make([]game.Chart, 0, len(s.charts)),
	}
	for _, c := range s.charts {
		doc.Charts = append(doc.Charts, c.Flatten())
	}
	return doc
}
