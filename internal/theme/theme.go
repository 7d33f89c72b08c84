package theme

import "git.lost.host/meutraa/stepedit/internal/game"

type Theme interface {
	// Kind paints s in the color of an event kind.
	Kind(kind game.Kind, s string) string
	// Note paints s in the color of a note's beat subdivision.
	Note(position game.MetricPosition, s string) string
	Difficulty(d game.Difficulty, s string) string
}
