package game

import (
	"fmt"
	"math/big"
)

// TimeSignature is a time signature anchored at a row. Measure is the index
// of the measure starting at Row, derived from the signatures before it.
type TimeSignature struct {
	Row         int
	Numerator   int
	Denominator int
	Measure     int
}

// DefaultTimeSignature is 4/4 at row 0.
var DefaultTimeSignature = TimeSignature{Numerator: 4, Denominator: 4}

// Valid reports whether the signature can be used for measure arithmetic.
func (ts TimeSignature) Valid() bool {
	return ts.Numerator > 0 && ts.Denominator > 0 && ts.RowsPerBeat() > 0
}

// RowsPerBeat returns how many rows one beat of this signature spans.
// A beat is a 1/Denominator note.
func (ts TimeSignature) RowsPerBeat() int {
	if ts.Numerator <= 0 || ts.Denominator <= 0 {
		return 0
	}
	return (RowsPerBeat * BeatsPerMeasure * ts.Numerator) / ts.Denominator / ts.Numerator
}

// RowsPerMeasure returns the length of one measure in rows.
func (ts TimeSignature) RowsPerMeasure() int {
	return ts.RowsPerBeat() * ts.Numerator
}

// PreviousMeasureBoundaryRow returns the greatest measure boundary <= row.
func (ts TimeSignature) PreviousMeasureBoundaryRow(row int) int {
	rowsPerMeasure := ts.RowsPerMeasure()
	if rowsPerMeasure <= 0 {
		return ts.Row
	}
	return ts.Row + floorDiv(row-ts.Row, rowsPerMeasure)*rowsPerMeasure
}

// NearestMeasureBoundaryRow returns the measure boundary closest to row.
// When row is exactly between two boundaries the later one is returned.
func (ts TimeSignature) NearestMeasureBoundaryRow(row int) int {
	previous := ts.PreviousMeasureBoundaryRow(row)
	next := previous + ts.RowsPerMeasure()
	if row-previous < next-row {
		return previous
	}
	return next
}

// MeasureAt returns the index of the measure containing row.
func (ts TimeSignature) MeasureAt(row int) int {
	rowsPerMeasure := ts.RowsPerMeasure()
	if rowsPerMeasure <= 0 {
		return ts.Measure
	}
	return ts.Measure + floorDiv(row-ts.Row, rowsPerMeasure)
}

// MetricPosition locates row in measures and beats of this signature.
func (ts TimeSignature) MetricPosition(row int) MetricPosition {
	rowsPerBeat := ts.RowsPerBeat()
	rowsPerMeasure := ts.RowsPerMeasure()
	if rowsPerMeasure <= 0 {
		return MetricPosition{Measure: ts.Measure, Denominator: 1}
	}
	measures := floorDiv(row-ts.Row, rowsPerMeasure)
	inMeasure := row - ts.Row - measures*rowsPerMeasure
	r := big.NewRat(int64(inMeasure%rowsPerBeat), int64(rowsPerBeat))
	return MetricPosition{
		Measure:     ts.Measure + measures,
		Beat:        inMeasure / rowsPerBeat,
		Numerator:   int(r.Num().Int64()),
		Denominator: int(r.Denom().Int64()),
	}
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%v/%v", ts.Numerator, ts.Denominator)
}

// MetricPosition is a position expressed as measure, beat and a reduced
// fraction of a beat.
type MetricPosition struct {
	Measure     int
	Beat        int
	Numerator   int
	Denominator int
}

func (p MetricPosition) String() string {
	if p.Numerator == 0 {
		return fmt.Sprintf("%v:%v", p.Measure, p.Beat)
	}
	return fmt.Sprintf("%v:%v+%v/%v", p.Measure, p.Beat, p.Numerator, p.Denominator)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
