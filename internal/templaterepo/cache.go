package templaterepo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const cacheDirName = "create-starter"

// Cache stores downloaded repository tarballs so that --offline can scaffold
// without network access. Layout: <dir>/<owner>/<repo>/<ref>.tar.gz
type Cache struct {
	logger   *zerolog.Logger
	cacheDir string
}

// NewCache uses the user cache directory, e.g. ~/.cache/create-starter on Linux.
func NewCache(logger *zerolog.Logger) (*Cache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user cache directory: %w", err)
	}

	cacheDir := filepath.Join(base, cacheDirName, "templates")
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{
		logger:   logger,
		cacheDir: cacheDir,
	}, nil
}

// NewCacheWithDir creates a Cache rooted at cacheDir.
func NewCacheWithDir(logger *zerolog.Logger, cacheDir string) *Cache {
	return &Cache{
		logger:   logger,
		cacheDir: cacheDir,
	}
}

// TarballPath is where the tarball of source's repository at its ref is kept.
func (c *Cache) TarballPath(source TemplateSource) string {
	ref := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(source.Ref)
	return filepath.Join(c.cacheDir, source.Owner, source.Repo, ref+".tar.gz")
}

func (c *Cache) HasTarball(source TemplateSource) bool {
	info, err := os.Stat(c.TarballPath(source))
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// StoreTarball writes a tarball through write into a staging file and moves
// it into place only when write succeeded, so a failed download never
// replaces a good cached copy.
func (c *Cache) StoreTarball(source TemplateSource, write func(w io.Writer) error) (string, error) {
	target := c.TarballPath(source)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	staging := filepath.Join(filepath.Dir(target), ".download-"+uuid.NewString())
	f, err := os.OpenFile(staging, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(staging)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(staging)
		return "", fmt.Errorf("failed to write tarball: %w", err)
	}

	if err := os.Rename(staging, target); err != nil {
		os.Remove(staging)
		return "", fmt.Errorf("failed to move tarball into the cache: %w", err)
	}

	c.logger.Debug().Str("path", target).Msgf("Cached tarball for %s", source)
	return target, nil
}
