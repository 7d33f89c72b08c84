package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"git.lost.host/meutraa/stepedit/internal/game"
)

var tagErrors = map[string]error{
	"gt":          ErrNotPositive,
	"gte":         ErrNegative,
	"min":         ErrLaneOutOfRange,
	"max":         ErrLaneOutOfRange,
	"denominator": ErrInvalidTimeSignature,
}

// Event checks the payload fields of e that its kind uses. numInputs is the
// lane count of the chart the event belongs to.
func Event(e game.Event, numInputs int) error {
	if e.Kind.IsSynthetic() {
		return fmt.Errorf("%v: %w", e, ErrSynthetic)
	}
	var err error
	check := func(field string, value any, tag string) {
		if nil != err {
			return
		}
		if verr := validate.Var(value, tag); nil != verr {
			err = fmt.Errorf("%v: %s: %w", e, field, cause(verr))
		}
	}

	switch e.Kind {
	case game.KindTap, game.KindMine, game.KindHoldStart, game.KindHoldEnd:
		check("lane", e.Lane, fmt.Sprintf("min=0,max=%d", numInputs-1))
	case game.KindTempo:
		check("bpm", e.BPM, "gt=0")
	case game.KindWarp:
		check("length_rows", e.LengthRows, "gte=0")
	case game.KindTimeSignature:
		check("numerator", e.Numerator, "gt=0")
		check("denominator", e.Denominator, "denominator")
	case game.KindInterpolatedScrollRate:
		check("period_rows", e.PeriodRows, "gte=0")
		check("period_micros", e.PeriodMicros, "gte=0")
	case game.KindTickCount:
		check("ticks", e.Ticks, "gte=0")
	case game.KindMultipliers:
		check("hit_multiplier", e.HitMultiplier, "gte=0")
		check("miss_multiplier", e.MissMultiplier, "gte=0")
	case game.KindFakeSegment:
		check("length_seconds", e.LengthSeconds, "gte=0")
	}
	return err
}

// Chart checks every event of a chart document.
func Chart(c game.Chart) error {
	props, ok := c.Type.Properties()
	if !ok {
		return fmt.Errorf("unknown chart type %q", c.Type)
	}
	var errs []error
	for i, e := range c.Events {
		if err := Event(e, props.NumInputs); nil != err {
			errs = append(errs, fmt.Errorf("event %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func cause(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if sentinel, ok := tagErrors[verrs[0].Tag()]; ok {
			return sentinel
		}
	}
	return err
}
