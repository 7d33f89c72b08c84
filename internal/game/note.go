package game

// NoteCounts summarises the lane notes of an event stream.
type NoteCounts struct {
	Taps  int
	Holds int
	Rolls int
	Mines int
}

// Steps returns the number of notes the player has to hit.
func (c NoteCounts) Steps() int {
	return c.Taps + c.Holds + c.Rolls
}

func CountNotes(events []Event) NoteCounts {
	var c NoteCounts
	for i := range events {
		switch events[i].Kind {
		case KindTap:
			c.Taps++
		case KindMine:
			c.Mines++
		case KindHoldStart:
			if events[i].Roll {
				c.Rolls++
			} else {
				c.Holds++
			}
		}
	}
	return c
}
