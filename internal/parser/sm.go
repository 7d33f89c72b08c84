package parser

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"git.lost.host/meutraa/stepedit/internal/game"
)

// Note characters in a #NOTES measure line.
//
// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note
//
// Keysounds, lifts and fakes have no editor event and are dropped.
func noteEvent(c byte, row, lane int) (game.Event, bool) {
	switch c {
	case '1':
		return game.Event{Kind: game.KindTap, Row: row, Lane: lane}, true
	case '2':
		return game.Event{Kind: game.KindHoldStart, Row: row, Lane: lane}, true
	case '4':
		return game.Event{Kind: game.KindHoldStart, Row: row, Lane: lane, Roll: true}, true
	case '3':
		return game.Event{Kind: game.KindHoldEnd, Row: row, Lane: lane}, true
	case 'M':
		return game.Event{Kind: game.KindMine, Row: row, Lane: lane}, true
	}
	return game.Event{}, false
}

// ImportSM reads a StepMania .sm file. Timing tags become rate-altering
// events shared by every chart.
func (p *DefaultParser) ImportSM(r io.Reader) (game.Song, error) {
	str, err := readAll(r)
	if nil != err {
		return game.Song{}, err
	}

	var song game.Song
	var timing []game.Event
	var notes []string

	for _, tag := range splitTags(str) {
		tag = stripComments(tag)
		end := strings.IndexByte(tag, ';')
		if end < 0 {
			end = len(tag)
		}
		name, value, ok := strings.Cut(tag[:end], ":")
		if !ok {
			continue
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		var events []game.Event
		switch name {
		case "TITLE":
			song.Title = value
		case "ARTIST":
			song.Artist = value
		case "MUSIC":
			song.MusicPath = value
		case "PREVIEW":
			song.PreviewFile = value
		case "OFFSET":
			song.MusicOffset, err = parseFloat(value)
		case "SAMPLESTART":
			song.SampleStart, err = parseFloat(value)
		case "SAMPLELENGTH":
			song.SampleLength, err = parseFloat(value)
		case "LASTSECONDHINT":
			song.LastSecondHint, err = parseFloat(value)
		case "BPMS":
			events, err = parsePairs(value, 2, 2, func(row int, v []string) (game.Event, error) {
				bpm, err := parseFloat(v[0])
				return game.Event{Kind: game.KindTempo, Row: row, BPM: bpm}, err
			})
		case "STOPS", "FREEZES":
			events, err = parsePairs(value, 2, 2, lengthEvent(game.KindStop))
		case "DELAYS":
			events, err = parsePairs(value, 2, 2, lengthEvent(game.KindDelay))
		case "WARPS":
			events, err = parsePairs(value, 2, 2, func(row int, v []string) (game.Event, error) {
				beats, err := parseFloat(v[0])
				return game.Event{Kind: game.KindWarp, Row: row, LengthRows: beatToRow(beats)}, err
			})
		case "TIMESIGNATURES":
			events, err = parsePairs(value, 3, 3, func(row int, v []string) (game.Event, error) {
				n, err := strconv.Atoi(v[0])
				if nil != err {
					return game.Event{}, err
				}
				d, err := strconv.Atoi(v[1])
				return game.Event{Kind: game.KindTimeSignature, Row: row, Numerator: n, Denominator: d}, err
			})
		case "TICKCOUNTS":
			events, err = parsePairs(value, 2, 2, func(row int, v []string) (game.Event, error) {
				ticks, err := strconv.Atoi(v[0])
				return game.Event{Kind: game.KindTickCount, Row: row, Ticks: ticks}, err
			})
		case "COMBOS":
			events, err = parsePairs(value, 2, 3, func(row int, v []string) (game.Event, error) {
				hit, err := strconv.Atoi(v[0])
				if nil != err {
					return game.Event{}, err
				}
				miss := hit
				if len(v) > 1 {
					miss, err = strconv.Atoi(v[1])
				}
				return game.Event{Kind: game.KindMultipliers, Row: row, HitMultiplier: hit, MissMultiplier: miss}, err
			})
		case "SCROLLS":
			events, err = parsePairs(value, 2, 2, func(row int, v []string) (game.Event, error) {
				rate, err := parseFloat(v[0])
				return game.Event{Kind: game.KindScrollRate, Row: row, Rate: rate}, err
			})
		case "SPEEDS":
			// beat=ratio=length=unit, unit 1 means the length is in seconds
			events, err = parsePairs(value, 3, 4, func(row int, v []string) (game.Event, error) {
				rate, err := parseFloat(v[0])
				if nil != err {
					return game.Event{}, err
				}
				length, err := parseFloat(v[1])
				if nil != err {
					return game.Event{}, err
				}
				e := game.Event{Kind: game.KindInterpolatedScrollRate, Row: row, Rate: rate}
				if len(v) > 2 && strings.TrimSpace(v[2]) == "1" {
					e.PeriodTimeBased = true
					e.PeriodMicros = game.ToMicros(length)
				} else {
					e.PeriodRows = beatToRow(length)
				}
				return e, nil
			})
		case "LABELS":
			events, err = parsePairs(value, 2, 2, func(row int, v []string) (game.Event, error) {
				return game.Event{Kind: game.KindLabel, Row: row, Text: v[0]}, nil
			})
		case "NOTES":
			notes = append(notes, value)
		}
		if nil != err {
			return game.Song{}, fmt.Errorf("#%s: %w", name, err)
		}
		timing = append(timing, events...)
	}

	for i, section := range notes {
		c, err := parseNotes(section)
		if nil != err {
			return game.Song{}, fmt.Errorf("#NOTES %d: %w", i, err)
		}
		if c == nil {
			continue
		}
		c.Events = append(c.Events, timing...)
		game.Sort(c.Events)
		song.Charts = append(song.Charts, *c)
	}

	if err := check(song); nil != err {
		return game.Song{}, err
	}
	return song, nil
}

func lengthEvent(kind game.Kind) func(int, []string) (game.Event, error) {
	return func(row int, v []string) (game.Event, error) {
		seconds, err := parseFloat(v[0])
		return game.Event{Kind: kind, Row: row, LengthMicros: game.ToMicros(seconds)}, err
	}
}

// parsePairs splits "beat=a=b,beat=a=b" lists. Each entry needs between
// minFields and maxFields fields, the beat included.
func parsePairs(value string, minFields, maxFields int, fn func(row int, values []string) (game.Event, error)) ([]game.Event, error) {
	var events []game.Event
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fields := strings.SplitN(entry, "=", maxFields)
		if len(fields) < minFields {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		beat, err := parseFloat(fields[0])
		if nil != err {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		e, err := fn(beatToRow(beat), fields[1:])
		if nil != err {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// parseNotes reads type:description:difficulty:meter:radar:data. Charts of
// unknown types are skipped.
func parseNotes(section string) (*game.Chart, error) {
	fields := strings.SplitN(section, ":", 6)
	if len(fields) != 6 {
		return nil, fmt.Errorf("expected 6 fields, found %d", len(fields))
	}
	chartType := game.ChartType(strings.TrimSpace(fields[0]))
	props, ok := chartType.Properties()
	if !ok {
		return nil, nil
	}
	rating, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if nil != err {
		rating = 1
	}
	c := &game.Chart{
		Type:        chartType,
		Description: strings.TrimSpace(fields[1]),
		Difficulty:  parseDifficulty(fields[2]),
		Rating:      rating,
	}

	for measure, block := range strings.Split(fields[5], ",") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSpace(l)
			if l != "" {
				lines = append(lines, l)
			}
		}

		lineCount := int64(len(lines))
		for i, line := range lines {
			if len(line) != props.NumInputs {
				return nil, fmt.Errorf("measure %d: line %q has %d lanes, want %d", measure, line, len(line), props.NumInputs)
			}
			// Lines subdivide the measure evenly, rounded onto the row grid.
			offset := big.NewRat(int64(i*game.RowsPerMeasure), lineCount)
			f, _ := offset.Float64()
			row := measure*game.RowsPerMeasure + int(math.Round(f))
			for lane := 0; lane < len(line); lane++ {
				if e, ok := noteEvent(line[lane], row, lane); ok {
					c.Events = append(c.Events, e)
				}
			}
		}
	}
	return c, nil
}

func parseDifficulty(s string) game.Difficulty {
	s = strings.TrimSpace(s)
	for d := game.Beginner; d <= game.Edit; d++ {
		if strings.EqualFold(d.String(), s) {
			return d
		}
	}
	switch strings.ToLower(s) {
	case "expert":
		return game.Challenge
	case "basic", "light":
		return game.Easy
	case "another", "trick", "standard":
		return game.Medium
	case "maniac", "heavy", "ssr":
		return game.Hard
	}
	return game.Edit
}

// splitTags splits a document into tags. A # opens a tag only at the start
// of the document, of a line or after the ; closing the previous tag, so
// values such as "Song #1" stay whole.
func splitTags(s string) []string {
	var tags []string
	start := -1
	boundary := true
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '#':
			if boundary {
				if start >= 0 {
					tags = append(tags, s[start:i])
				}
				start = i + 1
			}
			boundary = false
		case ';', '\n':
			boundary = true
		case ' ', '\t':
		default:
			boundary = false
		}
	}
	if start >= 0 {
		tags = append(tags, s[start:])
	}
	return tags
}

func stripComments(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if idx := strings.Index(l, "//"); idx >= 0 {
			lines[i] = l[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func beatToRow(beat float64) int {
	return int(math.Round(beat * game.RowsPerBeat))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
