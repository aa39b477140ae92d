package templaterepo

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

const (
	apiTimeout     = 6 * time.Second
	tarballTimeout = 60 * time.Second

	defaultAPIBaseURL      = "https://api.github.com"
	defaultCodeloadBaseURL = "https://codeload.github.com"

	userAgent = "create-starter"
)

// standardIgnores are never extracted from a template.
var standardIgnores = []string{
	".git",
	"node_modules",
	".DS_Store",
}

// Client talks to GitHub to list template directories and download tarballs.
type Client struct {
	logger          *zerolog.Logger
	httpClient      *http.Client
	apiBaseURL      string
	codeloadBaseURL string
	attempts        uint
	retryDelay      time.Duration
}

type ClientOption func(*Client)

// WithBaseURLs points the client at another API and codeload host.
func WithBaseURLs(api, codeload string) ClientOption {
	return func(c *Client) {
		c.apiBaseURL = strings.TrimRight(api, "/")
		c.codeloadBaseURL = strings.TrimRight(codeload, "/")
	}
}

// WithRetry sets the number of download attempts and the delay between them.
func WithRetry(attempts uint, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

func NewClient(logger *zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		logger:          logger,
		httpClient:      &http.Client{},
		apiBaseURL:      defaultAPIBaseURL,
		codeloadBaseURL: defaultCodeloadBaseURL,
		attempts:        3,
		retryDelay:      500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListContents returns the paths of the files and directories directly under
// dir. A missing repository, ref or directory yields an empty list; any other
// message from GitHub is returned as an error.
func (c *Client) ListContents(ctx context.Context, owner, repo, dir, ref string) ([]string, error) {
	entries, err := c.listEntries(ctx, owner, repo, dir, ref)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type == "file" || e.Type == "dir" {
			paths = append(paths, e.Path)
		}
	}
	return paths, nil
}

// ListDirectories is ListContents restricted to directories, returning base names.
func (c *Client) ListDirectories(ctx context.Context, owner, repo, dir, ref string) ([]string, error) {
	entries, err := c.listEntries(ctx, owner, repo, dir, ref)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type == "dir" {
			names = append(names, path.Base(e.Path))
		}
	}
	return names, nil
}

func (c *Client) listEntries(ctx context.Context, owner, repo, dir, ref string) ([]contentEntry, error) {
	if ref == "" {
		ref = "HEAD"
	}
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiBaseURL, owner, repo, strings.Trim(dir, "/"), url.QueryEscape(ref))

	var body []byte
	err := c.retry(ctx, func() error {
		var err error
		body, err = c.get(ctx, endpoint, apiTimeout, "application/vnd.github+json", true)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s/%s/%s: %w", owner, repo, dir, err)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var msg contentError
		if err := json.Unmarshal(trimmed, &msg); err != nil {
			return nil, fmt.Errorf("failed to decode contents response: %w", err)
		}
		if msg.Message != "" && msg.Message != "Not Found" {
			return nil, errors.New(msg.Message)
		}
		c.logger.Debug().Str("url", endpoint).Msg("Template directory not found")
		return nil, nil
	}

	var entries []contentEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode contents response: %w", err)
	}
	return entries, nil
}

// DownloadTarball writes the gzipped tarball of source's repository at its ref to w.
func (c *Client) DownloadTarball(ctx context.Context, source TemplateSource, w io.Writer) error {
	endpoint := fmt.Sprintf("%s/%s/%s/tar.gz/%s", c.codeloadBaseURL, source.Owner, source.Repo, url.PathEscape(source.Ref))
	c.logger.Debug().Str("url", endpoint).Msg("Downloading template tarball")

	var body []byte
	err := c.retry(ctx, func() error {
		var err error
		body, err = c.get(ctx, endpoint, tarballTimeout, "application/x-gzip", false)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", source, err)
	}

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write tarball: %w", err)
	}
	return nil
}

// statusError is a non-200 response. 4xx responses are not retried.
type statusError struct {
	status string
	code   int
}

func (e *statusError) Error() string {
	return "unexpected status " + e.status
}

func (c *Client) retry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code >= 500 || se.code == http.StatusTooManyRequests
			}
			return true
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug().Err(err).Uint("attempt", n+1).Msg("Retrying GitHub request")
		}),
	)
}

// get fetches endpoint. With jsonErrors, a 4xx response carrying a JSON body
// is returned as the body so that the caller can read GitHub's message.
func (c *Client) get(ctx context.Context, endpoint string, timeout time.Duration, accept string, jsonErrors bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if jsonErrors && resp.StatusCode >= 400 && resp.StatusCode < 500 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		return body, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.Status, code: resp.StatusCode}
	}
	return body, nil
}

// extractTarball extracts the entries of a GitHub tarball found under subdir
// into destDir, dropping the archive's top-level directory.
func (c *Client) extractTarball(r io.Reader, subdir, destDir string) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	subdir = strings.Trim(subdir, "/")
	cleanDest := filepath.Clean(destDir)
	var topLevelPrefix string
	extracted := 0

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("tar read error: %w", err)
		}

		if header.Typeflag == tar.TypeXGlobalHeader || header.Typeflag == tar.TypeXHeader {
			continue
		}

		if topLevelPrefix == "" {
			topLevelPrefix = strings.SplitN(header.Name, "/", 2)[0] + "/"
		}

		name := strings.TrimPrefix(header.Name, topLevelPrefix)
		if name == "" {
			continue
		}

		relPath := name
		if subdir != "" {
			if !strings.HasPrefix(name, subdir+"/") {
				continue
			}
			relPath = strings.TrimPrefix(name, subdir+"/")
		}
		relPath = strings.TrimSuffix(relPath, "/")
		if relPath == "" || shouldIgnore(relPath) {
			continue
		}

		targetPath := filepath.Join(cleanDest, filepath.FromSlash(relPath))
		if !strings.HasPrefix(targetPath, cleanDest+string(os.PathSeparator)) {
			return extracted, fmt.Errorf("illegal file path in archive: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return extracted, fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
		case tar.TypeReg:
			c.logger.Debug().Msgf("Extracting file: %s -> %s", name, targetPath)
			if err := writeFile(targetPath, tr, os.FileMode(header.Mode)&0o755|0o600); err != nil {
				return extracted, err
			}
			extracted++
		}
	}

	return extracted, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", target, err)
	}
	return f.Close()
}

// shouldIgnore reports whether any component of relPath is a standard ignore.
func shouldIgnore(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		for _, ignored := range standardIgnores {
			if part == ignored {
				return true
			}
		}
	}
	return false
}
