package packagemanager

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

// VersionProber reports the version output of a package manager binary.
type VersionProber interface {
	Version(ctx context.Context, name string) (string, error)
}

// ExecProber runs "<name> --version" ("deno -v" for deno).
type ExecProber struct{}

func (ExecProber) Version(ctx context.Context, name string) (string, error) {
	flag := "--version"
	if name == "deno" {
		flag = "-v"
	}
	// #nosec G204 -- name is one of the known managers
	out, err := exec.CommandContext(ctx, name, flag).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Detector finds the package managers installed on the machine.
type Detector struct {
	logger  *zerolog.Logger
	prober  VersionProber
	timeout time.Duration
}

type DetectorOption func(*Detector)

func WithProber(p VersionProber) DetectorOption {
	return func(d *Detector) {
		d.prober = p
	}
}

func WithProbeTimeout(timeout time.Duration) DetectorOption {
	return func(d *Detector) {
		d.timeout = timeout
	}
}

func NewDetector(logger *zerolog.Logger, opts ...DetectorOption) *Detector {
	d := &Detector{
		logger:  logger,
		prober:  ExecProber{},
		timeout: probeTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Installed probes every known manager in parallel and returns those that
// answered within the probe timeout, in display order. Deno 1.x is skipped
// because it has no install command.
func (d *Detector) Installed(ctx context.Context) []string {
	names := Names()
	found := make([]bool, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			out, err := d.prober.Version(probeCtx, name)
			if err != nil {
				d.logger.Debug().Err(err).Str("pm", name).Msg("Package manager not available")
				return nil
			}
			if name == "deno" && isDenoV1(out) {
				d.logger.Debug().Str("version", out).Msg("Skipping deno 1.x")
				return nil
			}
			found[i] = true
			return nil
		})
	}
	_ = g.Wait()

	installed := make([]string, 0, len(names))
	for i, name := range names {
		if found[i] {
			installed = append(installed, name)
		}
	}
	d.logger.Debug().Strs("installed", installed).Msg("Detected package managers")
	return installed
}

// isDenoV1 parses the first line of "deno -v", e.g. "deno 1.46.3". Output
// that does not carry a version is treated as 1.x.
func isDenoV1(output string) bool {
	line, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return true
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return true
	}
	return v.Major() == 1
}
