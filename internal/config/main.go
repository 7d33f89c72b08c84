package config

import (
	"io"
	"runtime"
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.1.0"

// Commands.
const (
	Inspect   = "inspect"
	Time      = "time"
	Row       = "row"
	Normalize = "normalize"
	Save      = "save"
	History   = "history"
)

type Config struct {
	Database string
	Color    bool
	Verbose  bool
	Jobs     int

	// Song file, or the song title for History.
	Song   string
	Chart  int
	Events bool
	Rows   []float64
	Times  []float64
	Output string
}

// Parse reads args, excluding the program name, and returns the selected
// command.
func Parse(args []string, usage io.Writer) (Config, string, error) {
	var c Config

	app := kingpin.New("stepedit", "Inspect, convert and store step charts.")
	app.Version(Version)
	app.UsageWriter(usage)
	app.ErrorWriter(usage)
	app.Terminate(nil)

	app.Flag("db", "Path of the sqlite song store").Default("./charts.db").StringVar(&c.Database)
	app.Flag("color", "Color output").Default("true").BoolVar(&c.Color)
	app.Flag("verbose", "Log debug messages").Short('v').BoolVar(&c.Verbose)
	app.Flag("jobs", "Charts to load in parallel").Short('j').Default(strconv.Itoa(runtime.NumCPU())).IntVar(&c.Jobs)

	inspect := app.Command(Inspect, "Summarise the charts of a song").Default()
	inspect.Arg("song", "Song file (.yaml or .sm)").Required().StringVar(&c.Song)
	inspect.Flag("chart", "Chart index").Short('c').Default("-1").IntVar(&c.Chart)
	inspect.Flag("events", "List every event of the chart").Short('e').BoolVar(&c.Events)

	timeCmd := app.Command(Time, "Convert rows to times")
	timeCmd.Arg("song", "Song file (.yaml or .sm)").Required().StringVar(&c.Song)
	timeCmd.Flag("chart", "Chart index").Short('c').Default("0").IntVar(&c.Chart)
	timeCmd.Flag("row", "Row to convert, repeatable").Short('r').Required().Float64ListVar(&c.Rows)

	row := app.Command(Row, "Convert times to rows")
	row.Arg("song", "Song file (.yaml or .sm)").Required().StringVar(&c.Song)
	row.Flag("chart", "Chart index").Short('c').Default("0").IntVar(&c.Chart)
	row.Flag("time", "Time in seconds to convert, repeatable").Short('t').Required().Float64ListVar(&c.Times)

	normalize := app.Command(Normalize, "Load a song and write it back as YAML in canonical order")
	normalize.Arg("song", "Song file (.yaml or .sm)").Required().StringVar(&c.Song)
	normalize.Flag("output", "Output file, - for stdout").Short('o').Default("-").StringVar(&c.Output)

	save := app.Command(Save, "Store a version of a song")
	save.Arg("song", "Song file (.yaml or .sm)").Required().StringVar(&c.Song)

	history := app.Command(History, "List stored versions of a song")
	history.Arg("title", "Song title").Required().StringVar(&c.Song)

	command, err := app.Parse(args)
	if nil != err {
		return Config{}, "", err
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	return c, command, nil
}
