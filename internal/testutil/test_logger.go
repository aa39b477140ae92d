package testutil

import (
	"bytes"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewTestLogger returns a debug-level console logger writing to stdout.
func NewTestLogger() *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &logger
}

// NewBufferedLogger is NewTestLogger that also records every entry as JSON in the returned buffer.
func NewBufferedLogger() (*zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := zerolog.New(io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stdout}, &buf)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &logger, &buf
}
