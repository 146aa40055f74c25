// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is reported when no valid release version was linked in.
const DevVersion = "0.0.0-dev"

//nolint:gochecknoglobals // set at build time via -ldflags -X
var (
	version   = DevVersion
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version without a leading "v". Values that
// are not valid semantic versions are reported as DevVersion.
func GetVersion() string {
	v, err := Parse(version)
	if err != nil {
		return DevVersion
	}
	return v.String()
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// Parse validates a version string such as "v1.2.3" or "1.2.3-rc.1".
func Parse(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return v, nil
}

// Info is the one-line string printed by --version.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s)", GetVersion(), gitCommit, buildDate)
}
