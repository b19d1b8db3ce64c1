// Package version exposes the jobfeed build version.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// devVersion is reported when no version was injected at build time.
const devVersion = "0.0.0-dev"

// version is set at build time via -ldflags "-X github.com/rshade/jobfeed/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Overridden by the linker.
var version = devVersion

// GetVersion returns the build version in canonical semver form without the
// leading "v". Unparseable values are returned unchanged.
func GetVersion() string {
	return normalize(version)
}

// normalize canonicalises a semver string, leaving invalid input untouched.
func normalize(raw string) string {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return v.String()
}

// IsDev reports whether the binary was built without an injected version.
func IsDev() bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return true
	}
	return v.Prerelease() == "dev"
}
