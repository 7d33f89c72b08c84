// Package store keeps saved versions of songs in a sqlite database.
package store

import (
	"time"

	"github.com/google/uuid"

	"git.lost.host/meutraa/stepedit/internal/game"
)

type Store interface {
	Init() error
	Deinit()

	// Save a version of the song. Saving a document identical to one
	// already stored returns the existing record.
	Save(song game.Song) (Record, error)

	// Load a saved version.
	Load(id uuid.UUID) (game.Song, error)

	// History lists the saved versions of a song title, newest first.
	History(title string) ([]Record, error)
}

type Record struct {
	ID      uuid.UUID
	Sum     string
	Title   string
	Charts  int
	Size    int
	SavedAt time.Time
}
