package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/smartcontractkit/create-starter/internal/constants"
	"github.com/smartcontractkit/create-starter/internal/pipeline"
)

// RegisterAfterCreate adds the file rewrites run once the template is in place.
func RegisterAfterCreate(o *pipeline.Orchestrator, logger *zerolog.Logger) {
	o.AfterCreateHooks().AddHook(func(_ context.Context, opts pipeline.AfterCreateOptions) (struct{}, error) {
		return struct{}{}, RewriteWranglerName(logger, opts.DirectoryPath, opts.ProjectName)
	}, constants.TemplateCloudflareWorkers)

	o.AfterCreateHooks().AddHook(func(_ context.Context, opts pipeline.AfterCreateOptions) (struct{}, error) {
		return struct{}{}, SetPackageName(logger, opts.DirectoryPath, opts.ProjectName)
	}, constants.Templates...)
}

// RewriteWranglerName replaces the project name placeholder in wrangler.toml.
// A file without the placeholder, or no file at all, is left alone, so the
// rewrite can run any number of times.
func RewriteWranglerName(logger *zerolog.Logger, dir, projectName string) error {
	wranglerPath := filepath.Join(dir, constants.WranglerConfigFileName)

	data, err := os.ReadFile(wranglerPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Msgf("No %s in %s", constants.WranglerConfigFileName, dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", wranglerPath, err)
	}

	wrangler := string(data)
	if !strings.Contains(wrangler, constants.ProjectNamePlaceholder) {
		return nil
	}

	rewritten := strings.ReplaceAll(wrangler, constants.ProjectNamePlaceholder, projectName)

	var decoded map[string]any
	if _, err := toml.Decode(rewritten, &decoded); err != nil {
		return fmt.Errorf("project name %q does not fit in %s: %w", projectName, constants.WranglerConfigFileName, err)
	}

	if err := os.WriteFile(wranglerPath, []byte(rewritten), 0o644); err != nil { // #nosec G306 -- project file
		return fmt.Errorf("write %s: %w", wranglerPath, err)
	}
	logger.Debug().Str("name", projectName).Msgf("Rewrote %s", wranglerPath)
	return nil
}

// SetPackageName puts "name" first in package.json. The key order of the rest
// of the file is kept, and a name the template already sets wins.
func SetPackageName(logger *zerolog.Logger, dir, projectName string) error {
	packageJSONPath := filepath.Join(dir, constants.PackageJSONFileName)

	data, err := os.ReadFile(packageJSONPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Msgf("No %s in %s", constants.PackageJSONFileName, dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", packageJSONPath, err)
	}

	parsed := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, parsed); err != nil {
		return fmt.Errorf("parse %s: %w", packageJSONPath, err)
	}

	name, err := encodeString(projectName)
	if err != nil {
		return err
	}

	pkg := orderedmap.New[string, json.RawMessage]()
	pkg.Set("name", name)
	for pair := parsed.Oldest(); pair != nil; pair = pair.Next() {
		pkg.Set(pair.Key, pair.Value)
	}

	out, err := marshalIndent(pkg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", packageJSONPath, err)
	}

	if err := os.WriteFile(packageJSONPath, out, 0o644); err != nil { // #nosec G306 -- project file
		return fmt.Errorf("write %s: %w", packageJSONPath, err)
	}
	logger.Debug().Str("name", projectName).Msgf("Rewrote %s", packageJSONPath)
	return nil
}

// marshalIndent writes pkg with two-space indentation and without escaping
// HTML characters, the way package managers write package.json.
func marshalIndent(pkg *orderedmap.OrderedMap[string, json.RawMessage]) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for pair := pkg.Oldest(); pair != nil; pair = pair.Next() {
		if pair != pkg.Oldest() {
			compact.WriteByte(',')
		}
		key, err := encodeString(pair.Key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(pair.Value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
