// Package version holds build metadata. Values are overridden at build time:
//
//	go build -ldflags "-X declgen/internal/version.GitCommit=$(git rev-parse HEAD)"
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Fingerprint identifies this generator build for output caching. Dev builds
// without a commit share one fingerprint per version string.
func Fingerprint() string {
	if GitCommit == "" {
		return Version
	}
	return Version + "+" + GitCommit
}

// Colored renders Version with its major, minor and patch parts highlighted.
// A version that is not dotted is returned as is.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + suffix
}

// Long is the multi-line form printed by `declgen version`.
func Long(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var b strings.Builder
	b.WriteString("declgen ")
	b.WriteString(v)
	b.WriteString("\n")
	if GitCommit != "" {
		b.WriteString("commit: " + GitCommit + "\n")
	}
	if BuildDate != "" {
		b.WriteString("built:  " + BuildDate + "\n")
	}
	return b.String()
}
