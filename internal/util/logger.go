package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger = zerolog.Logger

// LogLevel represents available log levels
type LogLevel = int

// Log levels
const (
	TraceLevel LogLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// verbosityLevels maps CLI verbosity 1 (error) through 5 (trace) to a LogLevel
var verbosityLevels = [5]LogLevel{ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel}

// LevelFromVerbosity converts a CLI verbosity into a LogLevel.
// Values are clamped to the 1..5 range.
func LevelFromVerbosity(verbose int) LogLevel {
	verbose = max(1, min(verbose, len(verbosityLevels)))
	return verbosityLevels[verbose-1]
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case TraceLevel:
		return zerolog.TraceLevel
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// InitializeLogger sets up the global logger with the specified configuration.
// Output goes to out, or stderr when out is nil.
func InitializeLogger(level LogLevel, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	// Set time format to ISO8601
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerologLevel(level))

	// Create a console writer with nice formatting for terminal output
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

	ctx := zerolog.New(output).With().Timestamp()
	if level == TraceLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	log.Debug().Msg("Logger initialized")
}

// GetLogger returns a configured logger for a specific component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
