// Package testdata holds fixture songs shared by tests.
package testdata

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// SongYAML is a two chart song document. Its first chart is the timing and
// notes of SongSM.
//
//go:embed song.yaml
var SongYAML []byte

// SongSM is a StepMania file using every timing tag the importer reads.
//
//go:embed song.sm
var SongSM []byte

func GetSong() (game.Song, error) {
	var song game.Song
	if err := yaml.Unmarshal(SongYAML, &song); nil != err {
		return game.Song{}, err
	}
	for i := range song.Charts {
		game.Sort(song.Charts[i].Events)
	}
	return song, nil
}
