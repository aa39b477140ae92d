package pipeline

import (
	"context"

	"github.com/rs/zerolog"
)

// Context accumulates what earlier phases decided. Hooks receive copies, so a
// later phase can never change a field an earlier phase already consumed.
type Context struct {
	ProjectName         string
	TargetDirectoryPath string
	TemplateName        string
	PackageManager      string
	InstallRequested    bool
}

func (c Context) MarshalZerologObject(e *zerolog.Event) {
	e.Str("projectName", c.ProjectName).
		Str("targetDirectoryPath", c.TargetDirectoryPath).
		Str("template", c.TemplateName).
		Str("packageManager", c.PackageManager).
		Bool("installRequested", c.InstallRequested)
}

// Decision is what a pre-fetch hook contributes to the Context.
// Zero fields leave the Context unchanged.
type Decision struct {
	InstallRequested bool
	PackageManager   string
}

type PreFetchOptions struct {
	TemplateName  string
	DirectoryPath string
}

type InstallOptions struct {
	DirectoryPath    string
	PackageManager   string
	InstallRequested bool
}

type AfterCreateOptions struct {
	ProjectName    string
	DirectoryPath  string
	PackageManager string
}

// FetchRequest describes one template download.
type FetchRequest struct {
	Source      string // e.g. gh:honojs/starter/templates/nodejs#v1.2
	Destination string
	Offline     bool
	Force       bool
}

// Fetcher downloads a template into a directory.
type Fetcher interface {
	FetchTemplate(ctx context.Context, req FetchRequest) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, req FetchRequest) error

func (f FetcherFunc) FetchTemplate(ctx context.Context, req FetchRequest) error {
	return f(ctx, req)
}
