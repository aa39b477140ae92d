package templaterepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/smartcontractkit/create-starter/internal/pipeline"
)

// ErrNotCached is returned by offline fetches of a template that was never downloaded.
var ErrNotCached = errors.New("template is not in the local cache")

// Fetcher downloads a template directory into a destination directory. It
// implements pipeline.Fetcher.
type Fetcher struct {
	logger *zerolog.Logger
	client *Client
	cache  *Cache
}

func NewFetcher(logger *zerolog.Logger, client *Client, cache *Cache) *Fetcher {
	return &Fetcher{logger: logger, client: client, cache: cache}
}

// FetchTemplate resolves req.Source, refreshes the cached tarball unless
// req.Offline is set, and extracts the template directory into req.Destination.
// Without req.Force the destination must be missing or empty.
func (f *Fetcher) FetchTemplate(ctx context.Context, req pipeline.FetchRequest) error {
	source, err := ParseSource(req.Source)
	if err != nil {
		return err
	}

	if !req.Force {
		if entries, err := os.ReadDir(req.Destination); err == nil && len(entries) > 0 {
			return fmt.Errorf("destination %s already exists and is not empty", req.Destination)
		}
	}

	if req.Offline {
		if !f.cache.HasTarball(source) {
			return fmt.Errorf("%w: %s", ErrNotCached, source)
		}
		f.logger.Debug().Msgf("Using cached tarball for %s", source)
	} else {
		_, err := f.cache.StoreTarball(source, func(w io.Writer) error {
			return f.client.DownloadTarball(ctx, source, w)
		})
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(req.Destination, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", req.Destination, err)
	}

	tarball, err := os.Open(f.cache.TarballPath(source))
	if err != nil {
		return fmt.Errorf("failed to open cached tarball: %w", err)
	}
	defer tarball.Close()

	n, err := f.client.extractTarball(tarball, source.Directory, req.Destination)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", source, err)
	}
	if n == 0 {
		return fmt.Errorf("template %s contains no files", source)
	}

	f.logger.Debug().Int("files", n).Str("dest", req.Destination).Msgf("Extracted %s", source)
	return nil
}
