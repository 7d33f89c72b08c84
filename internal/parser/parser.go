package parser

import (
	"io"

	"git.lost.host/meutraa/stepedit/internal/game"
)

type Parser interface {
	// Parse reads a song document from file. The format is chosen by the
	// file extension.
	Parse(file string) (game.Song, error)
	// Write encodes song as a YAML document.
	Write(w io.Writer, song game.Song) error
}
