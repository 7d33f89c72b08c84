package game

import (
	"fmt"
	"math"
)

const (
	// RowsPerBeat is the number of integer rows in one beat. Every event
	// position in a chart is expressed in rows.
	RowsPerBeat = 48
	// BeatsPerMeasure is the number of quarter-note beats in a 4/4 measure.
	BeatsPerMeasure = 4
	// RowsPerMeasure is the length of a 4/4 measure in rows.
	RowsPerMeasure = RowsPerBeat * BeatsPerMeasure
)

// Kind identifies the concrete type of an Event.
type Kind uint8

const (
	KindTap Kind = iota
	KindMine
	KindHoldStart
	KindHoldEnd
	KindTempo
	KindStop
	KindDelay
	KindWarp
	KindTimeSignature
	KindScrollRate
	KindInterpolatedScrollRate
	KindTickCount
	KindMultipliers
	KindLabel
	KindFakeSegment
	KindPreview
	KindLastSecondHint
	numKinds
)

var kindNames = [numKinds]string{
	KindTap:                    "tap",
	KindMine:                   "mine",
	KindHoldStart:              "hold-start",
	KindHoldEnd:                "hold-end",
	KindTempo:                  "tempo",
	KindStop:                   "stop",
	KindDelay:                  "delay",
	KindWarp:                   "warp",
	KindTimeSignature:          "time-signature",
	KindScrollRate:             "scroll-rate",
	KindInterpolatedScrollRate: "interpolated-scroll-rate",
	KindTickCount:              "tick-count",
	KindMultipliers:            "multipliers",
	KindLabel:                  "label",
	KindFakeSegment:            "fake",
	KindPreview:                "preview",
	KindLastSecondHint:         "last-second-hint",
}

// Kinds returns every event kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k >= numKinds {
		return nil, fmt.Errorf("unknown event kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if nil != err {
		return err
	}
	*k = parsed
	return nil
}

// IsRateAltering reports whether events of this kind change the row to time
// mapping and therefore live in the rate-altering track.
func (k Kind) IsRateAltering() bool {
	switch k {
	case KindTempo, KindStop, KindDelay, KindWarp, KindTimeSignature, KindScrollRate:
		return true
	}
	return false
}

// IsLaneNote reports whether events of this kind are bound to a lane.
func (k Kind) IsLaneNote() bool {
	switch k {
	case KindTap, KindMine, KindHoldStart, KindHoldEnd:
		return true
	}
	return false
}

// IsInputNote reports whether the player presses something for this kind.
func (k Kind) IsInputNote() bool {
	return k == KindTap || k == KindHoldStart || k == KindHoldEnd
}

// IsMisc reports whether events of this kind are drawn in the misc overlay
// rather than in a lane.
func (k Kind) IsMisc() bool {
	return !k.IsLaneNote()
}

// IsSynthetic reports whether events of this kind are derived by the editor
// and never written back to a chart.
func (k Kind) IsSynthetic() bool {
	return k == KindPreview || k == KindLastSecondHint
}

// Event is a single positioned chart event as produced by a parser and
// accepted by a writer. Only the payload fields of its Kind are meaningful.
type Event struct {
	Kind Kind `yaml:"kind" json:"kind"`
	Row  int  `yaml:"row" json:"row"`
	Lane int  `yaml:"lane,omitempty" json:"lane,omitempty"`

	// Hold starts.
	Roll bool `yaml:"roll,omitempty" json:"roll,omitempty"`

	// Tempo in beats per minute.
	BPM float64 `yaml:"bpm,omitempty" json:"bpm,omitempty"`

	// Stop and delay lengths.
	LengthMicros int64 `yaml:"length_micros,omitempty" json:"length_micros,omitempty"`

	// Warp length.
	LengthRows int `yaml:"length_rows,omitempty" json:"length_rows,omitempty"`

	// Time signature.
	Numerator   int `yaml:"numerator,omitempty" json:"numerator,omitempty"`
	Denominator int `yaml:"denominator,omitempty" json:"denominator,omitempty"`

	// Scroll rate, or the target rate of an interpolated scroll rate.
	Rate float64 `yaml:"rate,omitempty" json:"rate,omitempty"`

	// Interpolated scroll rate period.
	PeriodRows      int   `yaml:"period_rows,omitempty" json:"period_rows,omitempty"`
	PeriodMicros    int64 `yaml:"period_micros,omitempty" json:"period_micros,omitempty"`
	PeriodTimeBased bool  `yaml:"period_time_based,omitempty" json:"period_time_based,omitempty"`

	Ticks          int `yaml:"ticks,omitempty" json:"ticks,omitempty"`
	HitMultiplier  int `yaml:"hit_multiplier,omitempty" json:"hit_multiplier,omitempty"`
	MissMultiplier int `yaml:"miss_multiplier,omitempty" json:"miss_multiplier,omitempty"`

	Text string `yaml:"text,omitempty" json:"text,omitempty"`

	// Fake segment and preview lengths.
	LengthSeconds float64 `yaml:"length_seconds,omitempty" json:"length_seconds,omitempty"`
}

// GetLane returns the lane of lane-bound events and -1 for everything else.
func (e *Event) GetLane() int {
	if e.Kind.IsLaneNote() {
		return e.Lane
	}
	return -1
}

// StopSeconds returns a stop or delay length in seconds.
func (e *Event) StopSeconds() float64 {
	return ToSeconds(e.LengthMicros)
}

func (e Event) String() string {
	switch e.Kind {
	case KindTap, KindMine, KindHoldStart, KindHoldEnd:
		return fmt.Sprintf("%v@%v lane %v", e.Kind, e.Row, e.Lane)
	case KindTempo:
		return fmt.Sprintf("%v@%v %.9gbpm", e.Kind, e.Row, e.BPM)
	case KindStop, KindDelay:
		return fmt.Sprintf("%v@%v %.9gs", e.Kind, e.Row, e.StopSeconds())
	case KindWarp:
		return fmt.Sprintf("%v@%v %v rows", e.Kind, e.Row, e.LengthRows)
	case KindTimeSignature:
		return fmt.Sprintf("%v@%v %v/%v", e.Kind, e.Row, e.Numerator, e.Denominator)
	case KindScrollRate, KindInterpolatedScrollRate:
		return fmt.Sprintf("%v@%v %.9gx", e.Kind, e.Row, e.Rate)
	}
	return fmt.Sprintf("%v@%v", e.Kind, e.Row)
}

// ToSeconds converts microseconds to seconds.
func ToSeconds(micros int64) float64 {
	return float64(micros) / 1e6
}

// ToMicros converts seconds to the nearest microsecond.
func ToMicros(seconds float64) int64 {
	return int64(math.Round(seconds * 1e6))
}
