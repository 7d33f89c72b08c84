package game

// Chart is the persisted shape of one chart: metadata plus its event stream
// in canonical order. Synthetic events are never part of it.
type Chart struct {
	Type        ChartType  `yaml:"type" json:"type"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Rating      int        `yaml:"rating" json:"rating"`
	Name        string     `yaml:"name,omitempty" json:"name,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Style       string     `yaml:"style,omitempty" json:"style,omitempty"`
	Credit      string     `yaml:"credit,omitempty" json:"credit,omitempty"`
	MusicPath   string     `yaml:"music,omitempty" json:"music,omitempty"`
	// MusicOffset overrides the song offset when set.
	MusicOffset  *float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
	DisplayTempo string   `yaml:"display_tempo,omitempty" json:"display_tempo,omitempty"`
	Events       []Event  `yaml:"events" json:"events"`
}

// Song is the persisted shape of a song and all of its charts.
type Song struct {
	Title          string  `yaml:"title" json:"title"`
	Artist         string  `yaml:"artist,omitempty" json:"artist,omitempty"`
	MusicPath      string  `yaml:"music,omitempty" json:"music,omitempty"`
	MusicOffset    float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
	SampleStart    float64 `yaml:"sample_start,omitempty" json:"sample_start,omitempty"`
	SampleLength   float64 `yaml:"sample_length,omitempty" json:"sample_length,omitempty"`
	LastSecondHint float64 `yaml:"last_second_hint,omitempty" json:"last_second_hint,omitempty"`
	// PreviewFile names a separate preview audio file. When set the song
	// sample region is not used and charts carry no preview region.
	PreviewFile string  `yaml:"preview,omitempty" json:"preview,omitempty"`
	Charts      []Chart `yaml:"charts" json:"charts"`
}
