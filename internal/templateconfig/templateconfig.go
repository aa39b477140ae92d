package templateconfig

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/create-starter/internal/templaterepo"
)

const (
	configDirName  = ".create-starter"
	configFileName = "config.yaml"

	DefaultUser       = "honojs"
	DefaultRepository = "starter"
	DefaultDirectory  = "templates"

	developmentRef = "main"
)

// Config locates the template collection: gh:<user>/<repository>/<directory>/<template>#<ref>.
type Config struct {
	User       string `yaml:"user"`
	Repository string `yaml:"repository"`
	Directory  string `yaml:"directory"`
	Ref        string `yaml:"ref"`
}

// Default returns the built-in template location for a binary at version.
func Default(version string) Config {
	return Config{
		User:       DefaultUser,
		Repository: DefaultRepository,
		Directory:  DefaultDirectory,
		Ref:        DefaultRef(version),
	}
}

// DefaultRef pins templates to the release line of the binary: v1.4.2 reads
// templates from the v1.4 ref. Development and unparseable versions use main.
func DefaultRef(version string) string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return developmentRef
	}
	return fmt.Sprintf("v%d.%d", v.Major(), v.Minor())
}

// Path returns ~/.create-starter/config.yaml.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName, configFileName), nil
}

// Load returns the default config overlaid with the non-empty fields of
// ~/.create-starter/config.yaml. A missing file is not an error.
func Load(logger *zerolog.Logger, version string) (Config, error) {
	configPath, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(logger, configPath, version)
}

func LoadFile(logger *zerolog.Logger, configPath, version string) (Config, error) {
	cfg := Default(version)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Msg("No template config found at " + configPath)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read template config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse template config: %w", err)
	}

	if file.User != "" {
		cfg.User = file.User
	}
	if file.Repository != "" {
		cfg.Repository = file.Repository
	}
	if file.Directory != "" {
		cfg.Directory = file.Directory
	}
	if file.Ref != "" {
		cfg.Ref = file.Ref
	}

	logger.Debug().
		Str("user", cfg.User).
		Str("repository", cfg.Repository).
		Str("directory", cfg.Directory).
		Str("ref", cfg.Ref).
		Msg("Loaded template config from " + configPath)
	return cfg, nil
}

// Save writes cfg to configPath through a temp file.
func Save(cfg Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, configPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Source returns the fetch source of template.
func (c Config) Source(template string) templaterepo.TemplateSource {
	return templaterepo.TemplateSource{
		Owner:     c.User,
		Repo:      c.Repository,
		Directory: path.Join(c.Directory, template),
		Ref:       c.Ref,
	}
}

// Collection is the directory listing all templates.
func (c Config) Collection() templaterepo.TemplateSource {
	return templaterepo.TemplateSource{
		Owner:     c.User,
		Repo:      c.Repository,
		Directory: c.Directory,
		Ref:       c.Ref,
	}
}
