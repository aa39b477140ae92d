package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

type config struct {
	output  io.Writer
	level   zerolog.Level
	console bool
	noColor bool
}

// Option configures New.
type Option func(*config)

// WithLevel sets the level by name. Unknown names fall back to info.
func WithLevel(level string) Option {
	return func(cfg *config) {
		cfg.level = parseLevel(level)
	}
}

// WithConsoleWriter switches between human readable lines and JSON.
func WithConsoleWriter(console bool) Option {
	return func(cfg *config) {
		cfg.console = console
	}
}

// WithNoColor disables ANSI colors of the console writer.
func WithNoColor(noColor bool) Option {
	return func(cfg *config) {
		cfg.noColor = noColor
	}
}

func WithOutput(output io.Writer) Option {
	return func(cfg *config) {
		cfg.output = output
	}
}

func parseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(name)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
