package logger

import (
	"os"

	"github.com/rs/zerolog"
)

const DefaultLogLevel = "info"

// EnvVarNoColor follows https://no-color.org.
const EnvVarNoColor = "NO_COLOR"

// New builds a logger. Without options it writes console lines at info level to stdout.
func New(opts ...Option) *zerolog.Logger {
	cfg := &config{
		output:  os.Stdout,
		level:   zerolog.InfoLevel,
		console: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	output := cfg.output
	if cfg.console {
		// Level and message only: log lines sit between prompt frames.
		output = zerolog.ConsoleWriter{
			Out:          cfg.output,
			NoColor:      cfg.noColor,
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
	}

	logger := zerolog.New(output).Level(cfg.level)
	return &logger
}

// NewConsoleLogger writes human readable logs to stderr so that they never
// interleave with prompt frames on stdout.
func NewConsoleLogger() *zerolog.Logger {
	return New(
		WithLevel(DefaultLogLevel),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
		WithNoColor(os.Getenv(EnvVarNoColor) != ""),
	)
}

// Verbose returns a copy of l at debug level.
func Verbose(l *zerolog.Logger) *zerolog.Logger {
	verbose := l.Level(zerolog.DebugLevel)
	return &verbose
}
