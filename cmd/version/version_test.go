package version_test

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/smartcontractkit/create-starter/cmd/version"
	"github.com/smartcontractkit/create-starter/internal/runtime"
	"github.com/smartcontractkit/create-starter/internal/testutil"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{
			name:     "Default development build",
			version:  "development",
			expected: "create-starter development\n",
		},
		{
			name:     "Release version",
			version:  "v1.4.0-beta0",
			expected: "create-starter v1.4.0-beta0\n",
		},
		{
			name:     "Local build hash",
			version:  "build c8ab91c87c7135aa7c57669bb454e6a3287139d7",
			expected: "create-starter build c8ab91c87c7135aa7c57669bb454e6a3287139d7\n",
		},
	}

	original := version.Version
	t.Cleanup(func() { version.Version = original })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version.Version = tt.version

			ctx := runtime.NewContext(testutil.NewTestLogger(), viper.New(), tt.version)
			cmd := version.New(ctx)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs([]string{})

			err := cmd.Execute()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String(), "Output does not match for %s", tt.name)
		})
	}
}
