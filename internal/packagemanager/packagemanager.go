// Package packagemanager knows the JavaScript package managers a scaffolded
// project can be installed with, detects which of them are available and
// runs their install command.
package packagemanager

import (
	"fmt"
	"strings"
)

// Manager is a package manager and the command that installs a project's
// dependencies with it.
type Manager struct {
	Name           string
	InstallCommand []string
}

// known is ordered the way managers are offered to the user.
var known = []Manager{
	{Name: "npm", InstallCommand: []string{"npm", "install"}},
	{Name: "bun", InstallCommand: []string{"bun", "install"}},
	{Name: "deno", InstallCommand: []string{"deno", "install"}},
	{Name: "pnpm", InstallCommand: []string{"pnpm", "install"}},
	{Name: "yarn", InstallCommand: []string{"yarn"}},
}

func (m Manager) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, strings.Join(m.InstallCommand, " "))
}

const Default = "npm"

// Names returns the known manager names in display order.
func Names() []string {
	names := make([]string, 0, len(known))
	for _, m := range known {
		names = append(names, m.Name)
	}
	return names
}

func Lookup(name string) (Manager, bool) {
	for _, m := range known {
		if m.Name == name {
			return m, true
		}
	}
	return Manager{}, false
}

// IsKnown reports whether name is one of Names.
func IsKnown(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Current returns the manager that launched the process, read from the
// npm_config_user_agent value ("pnpm/9.1.0 npm/? node/v20.11.0 ..."). It
// falls back to npm.
func Current(userAgent string) string {
	if userAgent == "" {
		return Default
	}
	name, _, _ := strings.Cut(userAgent, "/")
	if IsKnown(name) {
		return name
	}
	return Default
}
