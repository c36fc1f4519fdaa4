// Package logging adapts zerolog to the mas.Logger interface.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// Config selects the level and format of the CLI logger.
type Config struct {
	Level  string
	Format string
	Out    io.Writer
}

// ParseLevel maps a level name onto zerolog; unknown names mean info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(name) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New configures a zerolog logger. The console format is coloured only
// when writing to a terminal.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(cfg.Level)

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Adapter implements mas.Logger on top of zerolog.
type Adapter struct {
	logger zerolog.Logger
}

var _ mas.Logger = (*Adapter)(nil)

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug implements mas.Logger.
func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug().Fields(fields).Msg(msg)
}

// Info implements mas.Logger.
func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(msg)
}

// Warn implements mas.Logger.
func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn().Fields(fields).Msg(msg)
}

// Error implements mas.Logger.
func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error().Fields(fields).Msg(msg)
}
