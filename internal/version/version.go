// Package version describes the build of the shell.
// Version, GitCommit and BuildDate are set at link time with -ldflags -X.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Link-time build variables.
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const unknown = "unknown"

// Build is a snapshot of the link-time variables.
type Build struct {
	Version   string
	GitCommit string
	BuildDate string
}

// Current returns the build of the running binary.
func Current() Build {
	return Build{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}
}

// SemVer parses the version string.
func (b Build) SemVer() (*semver.Version, error) {
	sv, err := semver.NewVersion(b.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version %q: %w", b.Version, err)
	}
	return sv, nil
}

// Base returns major.minor.patch, or the raw version when it does not parse.
// The prompt shows it.
func (b Build) Base() string {
	sv, err := b.SemVer()
	if err != nil {
		return b.Version
	}
	return fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch())
}

// Short is the one-line form printed by `chepy version`.
func (b Build) Short() string {
	if _, err := b.SemVer(); err != nil {
		return fmt.Sprintf("Chepy v%s (invalid version)", b.Version)
	}

	parts := []string{"Chepy v" + b.Version}
	if known(b.GitCommit) {
		parts = append(parts, "commit "+shortCommit(b.GitCommit))
	}
	if known(b.BuildDate) {
		parts = append(parts, "built "+b.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// Detailed is the multi-line form printed by `chepy version --detailed`.
func (b Build) Detailed() string {
	sv, err := b.SemVer()
	if err != nil {
		return fmt.Sprintf("Chepy v%s (%v)", b.Version, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Chepy v%s\n", b.Version)
	fmt.Fprintf(&sb, "Git Commit: %s\n", b.GitCommit)
	fmt.Fprintf(&sb, "Build Date: %s\n", b.BuildDate)
	if pre := sv.Prerelease(); pre != "" {
		fmt.Fprintf(&sb, "Prerelease: %s\n", pre)
	}
	if meta := sv.Metadata(); meta != "" {
		fmt.Fprintf(&sb, "Build Metadata: %s\n", meta)
	}
	fmt.Fprintf(&sb, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(&sb, "Platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	return sb.String()
}

func known(s string) bool {
	return s != "" && s != unknown
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
