package game

import "fmt"

// ChartType is the StepMania style name of a chart, e.g. "dance-single".
type ChartType string

const (
	DanceSingle     ChartType = "dance-single"
	DanceDouble     ChartType = "dance-double"
	DanceCouple     ChartType = "dance-couple"
	DanceRoutine    ChartType = "dance-routine"
	DanceSolo       ChartType = "dance-solo"
	DanceThreePanel ChartType = "dance-threepanel"
	PumpSingle      ChartType = "pump-single"
	PumpHalfDouble  ChartType = "pump-halfdouble"
	PumpDouble      ChartType = "pump-double"
	PumpCouple      ChartType = "pump-couple"
	PumpRoutine     ChartType = "pump-routine"
	SmxBeginner     ChartType = "smx-beginner"
	SmxSingle       ChartType = "smx-single"
	SmxDual         ChartType = "smx-dual"
	SmxFull         ChartType = "smx-full"
	SmxTeam         ChartType = "smx-team"
)

type ChartProperties struct {
	NumInputs  int
	NumPlayers int
	// Order is the position of the type when sorting charts of a song.
	Order int
}

var ChartTypeProperties = map[ChartType]ChartProperties{
	DanceSingle:     {NumInputs: 4, NumPlayers: 1, Order: 0},
	DanceDouble:     {NumInputs: 8, NumPlayers: 1, Order: 1},
	DanceCouple:     {NumInputs: 8, NumPlayers: 2, Order: 2},
	DanceRoutine:    {NumInputs: 8, NumPlayers: 2, Order: 3},
	DanceSolo:       {NumInputs: 6, NumPlayers: 1, Order: 4},
	DanceThreePanel: {NumInputs: 3, NumPlayers: 1, Order: 5},
	PumpSingle:      {NumInputs: 5, NumPlayers: 1, Order: 6},
	PumpHalfDouble:  {NumInputs: 6, NumPlayers: 1, Order: 7},
	PumpDouble:      {NumInputs: 10, NumPlayers: 1, Order: 8},
	PumpCouple:      {NumInputs: 10, NumPlayers: 2, Order: 9},
	PumpRoutine:     {NumInputs: 10, NumPlayers: 2, Order: 10},
	SmxBeginner:     {NumInputs: 3, NumPlayers: 1, Order: 11},
	SmxSingle:       {NumInputs: 5, NumPlayers: 1, Order: 12},
	SmxDual:         {NumInputs: 6, NumPlayers: 1, Order: 13},
	SmxFull:         {NumInputs: 10, NumPlayers: 1, Order: 14},
	SmxTeam:         {NumInputs: 10, NumPlayers: 2, Order: 15},
}

// Properties returns the lane and player counts of a chart type.
func (t ChartType) Properties() (ChartProperties, bool) {
	p, ok := ChartTypeProperties[t]
	return p, ok
}

// Difficulty is the StepMania difficulty slot of a chart.
type Difficulty int

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Hard
	Challenge
	Edit
)

var difficultyNames = []string{"Beginner", "Easy", "Medium", "Hard", "Challenge", "Edit"}

func (d Difficulty) String() string {
	if d >= 0 && int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if nil != err {
		return err
	}
	*d = parsed
	return nil
}
