// Package version provides build version information.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "v0.1.0"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = ""
)

// Informational returns version identifier that keys rewrite fingerprints, i.e. "v1.2.0+3f2a1c9"
func Informational() string {
	return Format(Version, GitCommit)
}

// Format canonicalises semantic version and appends commit as build metadata
func Format(version, commit string) string {
	result := version
	if !strings.HasPrefix(version, "v") && semver.IsValid("v"+version) {
		version = "v" + version
	}
	if semver.IsValid(version) {
		result = semver.Canonical(version)
	}
	if commit != "" {
		result += "+" + commit
	}
	return result
}
