package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/stepedit/internal/game"
	"git.lost.host/meutraa/stepedit/internal/validate"
)

var ErrUnsupportedFormat = errors.New("unsupported song format")

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (game.Song, error) {
	f, err := os.Open(file)
	if nil != err {
		return game.Song{}, err
	}
	defer f.Close()

	var song game.Song
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		song, err = p.Decode(f)
	case ".sm":
		song, err = p.ImportSM(f)
	default:
		return game.Song{}, fmt.Errorf("%s: %w", file, ErrUnsupportedFormat)
	}
	if nil != err {
		return game.Song{}, fmt.Errorf("%s: %w", file, err)
	}
	return song, nil
}

// check validates every chart, collecting all problems.
func check(song game.Song) error {
	var errs []error
	for i, c := range song.Charts {
		if err := validate.Chart(c); nil != err {
			errs = append(errs, fmt.Errorf("chart %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if nil != err {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r", ""), nil
}
