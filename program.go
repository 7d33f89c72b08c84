package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"

	"git.lost.host/meutraa/stepedit/internal/chart"
	"git.lost.host/meutraa/stepedit/internal/config"
	"git.lost.host/meutraa/stepedit/internal/parser"
	"git.lost.host/meutraa/stepedit/internal/render"
	"git.lost.host/meutraa/stepedit/internal/store"
	"git.lost.host/meutraa/stepedit/internal/theme"
	"git.lost.host/meutraa/stepedit/internal/validate"
)

var errNoTempo = errors.New("chart has no tempo")

type Program struct {
	Parser   parser.Parser
	Store    store.Store
	Renderer render.Renderer

	config config.Config
	log    *slog.Logger
	out    io.Writer
}

func NewProgram(cfg config.Config, logger *slog.Logger, out *os.File) *Program {
	// Ensure our Default implementations are used as interfaces
	return &Program{
		Parser:   &parser.DefaultParser{},
		Store:    &store.DefaultStore{Path: cfg.Database, Logger: logger},
		Renderer: render.NewDefaultRenderer(&theme.DefaultTheme{}, out),
		config:   cfg,
		log:      logger,
		out:      out,
	}
}

func (p *Program) Run(ctx context.Context, command string) error {
	switch command {
	case config.Inspect:
		return p.inspect(ctx)
	case config.Time:
		return p.convert(ctx, p.config.Rows, (*chart.Chart).RowToTime, validate.FormatSeconds)
	case config.Row:
		return p.convert(ctx, p.config.Times, (*chart.Chart).TimeToRow, func(row float64) string {
			return strconv.FormatFloat(row, 'f', 3, 64)
		})
	case config.Normalize:
		return p.normalize(ctx)
	case config.Save:
		return p.save(ctx)
	case config.History:
		return p.history()
	}
	return fmt.Errorf("unknown command %q", command)
}

func (p *Program) load(ctx context.Context) (*chart.Song, error) {
	log.Printf("Opening %v\n", p.config.Song)
	doc, err := p.Parser.Parse(p.config.Song)
	if nil != err {
		return nil, err
	}
	song, err := chart.LoadSong(ctx, chart.Env{Logger: p.log}, doc, p.config.Jobs)
	if nil != err {
		return nil, fmt.Errorf("unable to load %v: %w", p.config.Song, err)
	}
	return song, nil
}

func (p *Program) chart(song *chart.Song) (*chart.Chart, error) {
	charts := song.Charts()
	if p.config.Chart < 0 || p.config.Chart >= len(charts) {
		return nil, fmt.Errorf("chart %d out of range, the song has %d", p.config.Chart, len(charts))
	}
	return charts[p.config.Chart], nil
}

func (p *Program) inspect(ctx context.Context) error {
	song, err := p.load(ctx)
	if nil != err {
		return err
	}
	if p.config.Chart < 0 {
		return p.Renderer.Charts(p.out, song)
	}
	c, err := p.chart(song)
	if nil != err {
		return err
	}
	if p.config.Events {
		return p.Renderer.Events(p.out, c, c.Events())
	}
	return p.Renderer.Events(p.out, c, c.MiscEvents())
}

func (p *Program) convert(ctx context.Context, inputs []float64, fn func(*chart.Chart, float64) (float64, bool), format func(float64) string) error {
	song, err := p.load(ctx)
	if nil != err {
		return err
	}
	c, err := p.chart(song)
	if nil != err {
		return err
	}
	for _, in := range inputs {
		v, ok := fn(c, in)
		if !ok {
			return errNoTempo
		}
		if _, err := fmt.Fprintf(p.out, "%v\t%s\n", in, format(v)); nil != err {
			return err
		}
	}
	return nil
}

func (p *Program) normalize(ctx context.Context) (err error) {
	song, err := p.load(ctx)
	if nil != err {
		return err
	}
	out := p.out
	if p.config.Output != "-" && p.config.Output != "" {
		f, cerr := os.Create(p.config.Output)
		if nil != cerr {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); nil == err {
				err = cerr
			}
		}()
		out = f
	}
	return p.Parser.Write(out, song.Flatten())
}

func (p *Program) save(ctx context.Context) error {
	song, err := p.load(ctx)
	if nil != err {
		return err
	}
	if err := p.Store.Init(); nil != err {
		return err
	}
	defer p.Store.Deinit()

	record, err := p.Store.Save(song.Flatten())
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%v\t%v\n", record.ID, record.Sum)
	return err
}

func (p *Program) history() error {
	if err := p.Store.Init(); nil != err {
		return err
	}
	defer p.Store.Deinit()

	records, err := p.Store.History(p.config.Song)
	if nil != err {
		return err
	}
	return p.Renderer.History(p.out, records)
}
