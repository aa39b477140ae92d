package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/smartcontractkit/create-starter/internal/constants"
)

const loadEnvErrorMessage = "Not able to load configuration from .env file, skipping this optional step. " +
	"Environment variables such as GITHUB_TOKEN must then be exported in the shell."

// Settings holds values read from the environment.
type Settings struct {
	GitHubToken   string
	NoUpdateCheck bool
	UserAgent     string
}

// New loads the optional .env file and reads the environment through v.
func New(logger *zerolog.Logger, v *viper.Viper) (*Settings, error) {
	envPath := v.GetString(Flags.CliEnvFile.Name)

	if err := LoadEnv(envPath); err != nil {
		logger.Debug().Err(err).Msg(loadEnvErrorMessage)
	}

	if err := BindEnv(v); err != nil {
		return nil, err
	}

	return &Settings{
		GitHubToken:   v.GetString(constants.EnvVarGitHubToken),
		NoUpdateCheck: v.GetBool(constants.EnvVarNoUpdateCheck),
		UserAgent:     v.GetString(constants.EnvVarNpmUserAgent),
	}, nil
}

func BindEnv(v *viper.Viper) error {
	envVars := []string{
		constants.EnvVarGitHubToken,
		constants.EnvVarNoUpdateCheck,
		constants.EnvVarNpmUserAgent,
	}

	// Explicit names: viper upper-cases single-argument bindings.
	for _, variable := range envVars {
		if err := v.BindEnv(variable, variable); err != nil {
			return fmt.Errorf("failed to bind environment variable: %s", variable)
		}
	}
	return nil
}

// LoadEnv loads envPath, or the nearest .env in the working directory or one
// of its parents. Variables already set in the process win.
func LoadEnv(envPath string) error {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading file from %s: %w", envPath, err)
			}
			return nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}

	foundEnvPath, err := findEnvFile(cwd, constants.DefaultEnvFileName)
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := godotenv.Load(foundEnvPath); err != nil {
		return fmt.Errorf("error loading file from %s: %w", foundEnvPath, err)
	}
	return nil
}

func findEnvFile(startDir, fileName string) (string, error) {
	dir := startDir

	for {
		filePath := filepath.Join(dir, fileName)

		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return filePath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break // Reached the root directory.
		}
		dir = parentDir
	}
	return "", fmt.Errorf("file %s not found in any parent directory starting from %s", fileName, startDir)
}
