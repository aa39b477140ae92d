package transformation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ResolveTargetDirectory resolves the target directory of a create run
// against cwd. A leading ~ expands to the home directory and `.\` is read as
// the current directory on every platform.
func ResolveTargetDirectory(cwd, target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", errors.New("target directory is empty")
	}
	if target == `.\` {
		target = "."
	}

	expanded, err := expandHome(target)
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(cwd, expanded), nil
}

// expandHome replaces a leading ~ or ~/ with the home directory.
func expandHome(input string) (string, error) {
	if input != "~" && !strings.HasPrefix(input, "~/") && !strings.HasPrefix(input, `~\`) {
		return input, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, input[1:]), nil
}
