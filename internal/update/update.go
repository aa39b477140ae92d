// Package update tells the user when a newer create-starter release exists.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

const (
	githubAPIURL  = "https://api.github.com/repos/smartcontractkit/create-starter/releases/latest"
	repoURL       = "https://github.com/smartcontractkit/create-starter/releases"
	timeout       = 2 * time.Second
	cacheDuration = 24 * time.Hour
	cacheFileName = "update.json"
	cacheDirName  = ".create-starter"

	developmentVersion = "development"
)

// githubRelease is the part of the GitHub releases API response we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// cacheState stores the result of the last successful check.
type cacheState struct {
	LatestVersion string    `json:"latest_version"`
	LastCheck     time.Time `json:"last_check"`
}

// Checker compares the running version with the latest GitHub release. The
// release is looked up at most once per day; the answer is cached on disk.
type Checker struct {
	logger    *zerolog.Logger
	client    *http.Client
	url       string
	cachePath string
	out       io.Writer
	now       func() time.Time
}

type Option func(*Checker)

// WithReleaseURL points the checker at another releases endpoint.
func WithReleaseURL(url string) Option {
	return func(c *Checker) {
		c.url = url
	}
}

func WithCachePath(path string) Option {
	return func(c *Checker) {
		c.cachePath = path
	}
}

// WithOutput sets where the notice is printed. Defaults to stderr so that it
// never mixes with command output.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.out = w
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

func NewChecker(logger *zerolog.Logger, opts ...Option) *Checker {
	c := &Checker{
		logger: logger,
		client: &http.Client{Timeout: timeout},
		url:    githubAPIURL,
		out:    os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cachePath == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			c.cachePath = filepath.Join(homeDir, cacheDirName, cacheFileName)
		} else {
			logger.Debug().Msgf("Failed to get user home directory: %v", err)
		}
	}
	return c
}

// Check prints a notice when a release newer than currentVersion exists. It
// reports whether one was printed. Every failure is logged at debug level
// and otherwise ignored.
func (c *Checker) Check(ctx context.Context, currentVersion string) bool {
	if currentVersion == developmentVersion {
		c.logger.Debug().Msg("Current version is 'development', skipping update check")
		return false
	}

	currentSemVer, err := semver.NewVersion(strings.TrimSpace(currentVersion))
	if err != nil {
		c.logger.Debug().Msgf("Failed to parse current version '%s': %v", currentVersion, err)
		return false
	}

	cache := c.loadCache()
	latestVersionString := cache.LatestVersion

	now := c.now()
	if now.Sub(cache.LastCheck) > cacheDuration {
		c.logger.Debug().Msg("Cache expired or empty. Fetching from GitHub.")
		latest, err := c.fetchLatestVersion(ctx)
		if err != nil {
			c.logger.Debug().Msgf("Failed to fetch latest version: %v", err)
		} else {
			latestVersionString = latest
			c.saveCache(cacheState{LatestVersion: latest, LastCheck: now})
		}
	} else {
		c.logger.Debug().Msgf("Using cached latest version: %s", latestVersionString)
	}

	if latestVersionString == "" {
		return false
	}

	latestSemVer, err := semver.NewVersion(latestVersionString)
	if err != nil {
		c.logger.Debug().Msgf("Failed to parse latest tag '%s': %v", latestVersionString, err)
		return false
	}

	if !latestSemVer.GreaterThan(currentSemVer) {
		c.logger.Debug().Msgf("Current version %s is up-to-date.", currentSemVer)
		return false
	}

	fmt.Fprintf(c.out,
		"\nUpdate available! You're running %s, but %s is the latest.\n"+
			"Visit %s to upgrade.\n\n",
		currentSemVer,
		latestSemVer,
		repoURL,
	)
	return true
}

func (c *Checker) loadCache() cacheState {
	if c.cachePath == "" {
		return cacheState{}
	}

	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Debug().Msgf("Failed to read cache: %v", err)
		}
		return cacheState{}
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		c.logger.Debug().Msgf("Cache file corrupted, ignoring: %v", err)
		return cacheState{}
	}
	return state
}

func (c *Checker) saveCache(state cacheState) {
	if c.cachePath == "" {
		return
	}

	data, err := json.Marshal(state)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(c.cachePath), 0o750)
	}
	if err == nil {
		err = os.WriteFile(c.cachePath, data, 0o640)
	}
	if err != nil {
		c.logger.Debug().Msgf("Failed to save cache: %v", err)
	}
}

func (c *Checker) fetchLatestVersion(ctx context.Context) (string, error) {
	c.logger.Debug().Msgf("Fetching latest release from %s", c.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "create-starter-update-check")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API returned non-200 status: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode GitHub API response: %w", err)
	}
	if release.TagName == "" {
		return "", errors.New("github API response contained no tag_name")
	}
	return release.TagName, nil
}
