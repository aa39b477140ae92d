package templateconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/create-starter/internal/testutil"
)

func TestDefaultRef(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.4.2", "v1.4"},
		{"v0.9.0", "v0.9"},
		{"2.0.0-rc.1", "v2.0"},
		{"development", "main"},
		{"", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultRef(tt.version))
		})
	}
}

func TestLoadDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(testutil.NewTestLogger(), "1.2.3")
	require.NoError(t, err)
	assert.Equal(t, Config{User: "honojs", Repository: "starter", Directory: "templates", Ref: "v1.2"}, cfg)
	assert.Equal(t, "gh:honojs/starter/templates/bun#v1.2", cfg.Source("bun").String())
}

func TestLoadOverridesFromFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	configDir := filepath.Join(homeDir, ".create-starter")
	require.NoError(t, os.MkdirAll(configDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(`
user: my-org
ref: canary
`), 0o600))

	cfg, err := Load(testutil.NewTestLogger(), "development")
	require.NoError(t, err)
	assert.Equal(t, "my-org", cfg.User)
	assert.Equal(t, "starter", cfg.Repository)
	assert.Equal(t, "templates", cfg.Directory)
	assert.Equal(t, "canary", cfg.Ref)
	assert.Equal(t, "gh:my-org/starter/templates#canary", cfg.Collection().String())
}

func TestLoadInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("user: [unclosed"), 0o600))

	_, err := LoadFile(testutil.NewTestLogger(), configPath, "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template config")
}

func TestSaveRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Config{User: "u", Repository: "r", Directory: "d", Ref: "v9.9"}

	require.NoError(t, Save(want, configPath))
	got, err := LoadFile(testutil.NewTestLogger(), configPath, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
