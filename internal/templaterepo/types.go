package templaterepo

import (
	"fmt"
	"strings"
)

// DefaultRef is used when a source spec names no ref.
const DefaultRef = "main"

// TemplateSource identifies a directory inside a GitHub repository at a ref.
type TemplateSource struct {
	Owner     string
	Repo      string
	Directory string // slash separated, empty for the repository root
	Ref       string // branch, tag, or SHA
}

// String returns "gh:owner/repo/directory#ref".
func (s TemplateSource) String() string {
	path := s.Owner + "/" + s.Repo
	if s.Directory != "" {
		path += "/" + s.Directory
	}
	return "gh:" + path + "#" + s.Ref
}

// ParseSource parses "gh:owner/repo[/directory...][#ref]". The "gh:" and
// "github:" prefixes are optional.
func ParseSource(spec string) (TemplateSource, error) {
	rest := spec
	for _, prefix := range []string{"gh:", "github:"} {
		if strings.HasPrefix(rest, prefix) {
			rest = strings.TrimPrefix(rest, prefix)
			break
		}
	}

	ref := DefaultRef
	if i := strings.Index(rest, "#"); i >= 0 {
		ref = rest[i+1:]
		rest = rest[:i]
		if ref == "" {
			return TemplateSource{}, fmt.Errorf("invalid template source %q: empty ref", spec)
		}
	}

	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return TemplateSource{}, fmt.Errorf("invalid template source %q: expected gh:owner/repo[/directory][#ref]", spec)
	}

	src := TemplateSource{Owner: parts[0], Repo: parts[1], Ref: ref}
	if len(parts) == 3 {
		src.Directory = strings.Trim(parts[2], "/")
	}
	return src, nil
}

// contentEntry is one item of the GitHub contents API.
type contentEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// contentError is the body GitHub returns instead of a listing.
type contentError struct {
	Message string `json:"message"`
}
