package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{" DEBUG ", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel("info"), WithConsoleWriter(false))

	log.Debug().Msg("probe started")
	log.Info().Str("template", "bun").Msg("Fetching template")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "only the info line is written")
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "bun", entry["template"])
	assert.Equal(t, "Fetching template", entry["message"])
	assert.NotContains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel("debug"), WithNoColor(true))

	log.Debug().Str("pm", "pnpm").Msg("Installing")

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "Installing")
	assert.Contains(t, out, "pm=pnpm")
	assert.NotContains(t, out, "\x1b[", "no color codes")
	assert.NotContains(t, out, `{"level"`)
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel("info"), WithConsoleWriter(false))

	log.Debug().Msg("hidden")
	Verbose(log).Debug().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel(), "the original logger is unchanged")
}

func TestDisabled(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel("disabled"))

	log.Error().Msg("nothing")
	assert.Empty(t, buf.String())
}
