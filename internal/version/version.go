// Package version carries the build fingerprints stamped into the ember
// binary.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// The variables are plain strings so a release build can override them
// via -ldflags.
var (
	// Version is the semantic version of this build.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Pretty renders the version for terminal output: the release part bold
// green, any prerelease tag dimmed yellow.
func Pretty() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	base, pre, found := strings.Cut(v, "-")
	out := color.New(color.FgGreen, color.Bold).Sprint(base)
	if found {
		out += "-" + color.New(color.FgYellow, color.Faint).Sprint(pre)
	}
	return out
}
