package chart

import "log/slog"

// Env carries the collaborators a chart needs from its host. The zero value
// is usable and discards all logging.
type Env struct {
	Logger *slog.Logger
}

func (env Env) logger() *slog.Logger {
	if env.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return env.Logger
}

// assert reports a broken internal invariant. Debug builds panic, release
// builds log and let the caller carry on with a best-effort no-op.
func (c *Chart) assert(condition bool, msg string, args ...any) bool {
	if condition {
		return true
	}
	c.log.Error(msg, args...)
	if debugAssertions {
		panic("chart: " + msg)
	}
	return false
}
