package game

import (
	"cmp"
	"slices"
)

// Same-row ordering. Delays happen before the notes on their row and positive
// stops after them, but a positive stop still sorts ahead of the notes.
// Negative stops sort after notes at the same row, so flipping the sign of
// a stop changes where it sorts.
const (
	priorityTempo = iota
	priorityScrollRate
	priorityInterpolatedScrollRate
	priorityDelay
	priorityStop
	priorityTickCount
	priorityMultipliers
	priorityLabel
	priorityFakeSegment
	priorityNote
	priorityNegativeStop
	priorityWarp
	priorityTimeSignature
	priorityPreview
	priorityLastSecondHint
)

// SortPriority returns the tiebreak used between events sharing a row.
func SortPriority(kind Kind, lengthMicros int64) int {
	switch kind {
	case KindTempo:
		return priorityTempo
	case KindScrollRate:
		return priorityScrollRate
	case KindInterpolatedScrollRate:
		return priorityInterpolatedScrollRate
	case KindDelay:
		return priorityDelay
	case KindStop:
		if lengthMicros < 0 {
			return priorityNegativeStop
		}
		return priorityStop
	case KindTickCount:
		return priorityTickCount
	case KindMultipliers:
		return priorityMultipliers
	case KindLabel:
		return priorityLabel
	case KindFakeSegment:
		return priorityFakeSegment
	case KindWarp:
		return priorityWarp
	case KindTimeSignature:
		return priorityTimeSignature
	case KindPreview:
		return priorityPreview
	case KindLastSecondHint:
		return priorityLastSecondHint
	}
	return priorityNote
}

// Compare is the canonical event order: row, then same-row priority, then lane.
func Compare(a, b *Event) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	if c := cmp.Compare(SortPriority(a.Kind, a.LengthMicros), SortPriority(b.Kind, b.LengthMicros)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.GetLane(), b.GetLane()); c != 0 {
		return c
	}
	return cmp.Compare(a.Kind, b.Kind)
}

// Sort orders events canonically, keeping the input order of events that
// compare equal.
func Sort(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return Compare(&a, &b)
	})
}
