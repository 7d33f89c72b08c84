// Package validate checks values typed into event edit controls and events
// read from documents before they reach a chart.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"git.lost.host/meutraa/stepedit/internal/game"
)

var (
	ErrSyntax               = errors.New("invalid syntax")
	ErrNotPositive          = errors.New("must be greater than zero")
	ErrNegative             = errors.New("must not be negative")
	ErrInvalidTimeSignature = errors.New("invalid time signature")
	ErrLaneOutOfRange       = errors.New("lane out of range")
	ErrSynthetic            = errors.New("event is derived from the song")
)

// Suffixes used when formatting values for edit controls.
const (
	TempoSuffix      = "bpm"
	SecondsSuffix    = "s"
	ScrollRateSuffix = "x"
	RowsSuffix       = "rows"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("denominator", validateDenominator); nil != err {
		panic(err)
	}
}

// validateDenominator accepts note values whose length is a whole number of
// rows.
func validateDenominator(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d > 0 && game.RowsPerMeasure%d == 0
}

// Tempo parses "120", "120bpm" or "120 bpm".
func Tempo(s string) (float64, error) {
	v, err := parseFloat(s, TempoSuffix)
	if nil != err {
		return 0, fmt.Errorf("tempo %q: %w", s, err)
	}
	if err := validate.Var(v, "gt=0"); nil != err {
		return 0, fmt.Errorf("tempo %q: %w", s, ErrNotPositive)
	}
	return v, nil
}

// Seconds parses a stop, delay or fake segment length such as "0.5s". Stops
// and delays may be negative.
func Seconds(s string) (float64, error) {
	v, err := parseFloat(s, SecondsSuffix)
	if nil != err {
		return 0, fmt.Errorf("seconds %q: %w", s, err)
	}
	return v, nil
}

// ScrollRate parses "1.5" or "1.5x".
func ScrollRate(s string) (float64, error) {
	v, err := parseFloat(s, ScrollRateSuffix)
	if nil != err {
		return 0, fmt.Errorf("scroll rate %q: %w", s, err)
	}
	return v, nil
}

// TimeSignature parses "n/d".
func TimeSignature(s string) (game.TimeSignature, error) {
	n, d, err := parseRatio(s)
	if nil != err {
		return game.TimeSignature{}, fmt.Errorf("time signature %q: %w", s, err)
	}
	ts := game.TimeSignature{Numerator: n, Denominator: d}
	if validate.Var(n, "gt=0") != nil || validate.Var(d, "denominator") != nil || !ts.Valid() {
		return game.TimeSignature{}, fmt.Errorf("time signature %q: %w", s, ErrInvalidTimeSignature)
	}
	return ts, nil
}

// Multipliers parses "hit/miss".
func Multipliers(s string) (hit, miss int, err error) {
	hit, miss, err = parseRatio(s)
	if nil != err {
		return 0, 0, fmt.Errorf("multipliers %q: %w", s, err)
	}
	if validate.Var(hit, "gte=0") != nil || validate.Var(miss, "gte=0") != nil {
		return 0, 0, fmt.Errorf("multipliers %q: %w", s, ErrNegative)
	}
	return hit, miss, nil
}

func TickCount(s string) (int, error) {
	return nonNegativeInt("tick count", s, "")
}

// WarpRows parses a warp length in rows, e.g. "48" or "48rows".
func WarpRows(s string) (int, error) {
	return nonNegativeInt("warp", s, RowsSuffix)
}

func FormatTempo(bpm float64) string        { return formatFloat(bpm) + TempoSuffix }
func FormatSeconds(seconds float64) string  { return formatFloat(seconds) + SecondsSuffix }
func FormatScrollRate(rate float64) string  { return formatFloat(rate) + ScrollRateSuffix }
func FormatMultipliers(hit, miss int) string { return fmt.Sprintf("%d/%d", hit, miss) }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 9, 64)
}

func nonNegativeInt(what, s, suffix string) (int, error) {
	v, err := strconv.Atoi(trim(s, suffix))
	if nil != err {
		return 0, fmt.Errorf("%s %q: %w", what, s, ErrSyntax)
	}
	if err := validate.Var(v, "gte=0"); nil != err {
		return 0, fmt.Errorf("%s %q: %w", what, s, ErrNegative)
	}
	return v, nil
}

func parseFloat(s, suffix string) (float64, error) {
	v, err := strconv.ParseFloat(trim(s, suffix), 64)
	if nil != err || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrSyntax
	}
	return v, nil
}

func parseRatio(s string) (int, int, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, ErrSyntax
	}
	n, err := strconv.Atoi(strings.TrimSpace(a))
	if nil != err {
		return 0, 0, ErrSyntax
	}
	d, err := strconv.Atoi(strings.TrimSpace(b))
	if nil != err {
		return 0, 0, ErrSyntax
	}
	return n, d, nil
}

func trim(s, suffix string) string {
	s = strings.TrimSpace(s)
	if suffix != "" {
		s = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(s), suffix))
	}
	return s
}
