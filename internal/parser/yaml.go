package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// Decode reads a YAML song document. Unknown fields are an error, and so is
// any event whose payload is out of range.
func (p *DefaultParser) Decode(r io.Reader) (game.Song, error) {
	var song game.Song
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&song); nil != err {
		if errors.Is(err, io.EOF) {
			return game.Song{}, errors.New("empty song document")
		}
		return game.Song{}, fmt.Errorf("unable to decode song: %w", err)
	}
	for i := range song.Charts {
		game.Sort(song.Charts[i].Events)
	}
	if err := check(song); nil != err {
		return game.Song{}, err
	}
	return song, nil
}

func (p *DefaultParser) Write(w io.Writer, song game.Song) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(song); nil != err {
		return fmt.Errorf("unable to encode song: %w", err)
	}
	return enc.Close()
}
