package votebot

import (
	"io"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// Log formats accepted by LogConfig.Format.
const (
	LogFormatLogfmt   = "logfmt"
	LogFormatJSON     = "json"
	LogFormatTerminal = "terminal"
)

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is a log15 level name: debug, info, warn, error or crit.
	// Defaults to info.
	Level string
	// Format is one of logfmt, json or terminal. Defaults to logfmt.
	Format string
}

// NewLogger builds a logger writing records of at least the configured level
// to w. Unknown levels or formats return a *LoggingInitError.
func NewLogger(cfg LogConfig, w io.Writer) (log15.Logger, error) {
	levelName := strings.ToLower(strings.TrimSpace(cfg.Level))
	if levelName == "" {
		levelName = "info"
	}
	lvl, err := log15.LvlFromString(levelName)
	if err != nil {
		return nil, &LoggingInitError{Err: err}
	}

	var format log15.Format
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", LogFormatLogfmt:
		format = log15.LogfmtFormat()
	case LogFormatJSON:
		format = log15.JsonFormat()
	case LogFormatTerminal:
		format = log15.TerminalFormat()
	default:
		return nil, &LoggingInitError{Err: errors.Errorf("unknown log format %q", cfg.Format)}
	}

	l := log15.New()
	l.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, format)))
	return l, nil
}

func discardLogger() log15.Logger {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return l
}
