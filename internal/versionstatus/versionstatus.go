// Package versionstatus derives a release maturity badge from a VERSION file.
package versionstatus

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/mkdocs"
)

// Status is the maturity of a version.
type Status string

const (
	Alpha  Status = "alpha"
	Beta   Status = "beta"
	Stable Status = "stable"
)

// Keys written under extra: in mkdocs.yml.
const (
	ExtraStatusKey  = "version_status"
	ExtraVersionKey = "version_string"
)

// VersionFile is the file read from the project root.
const VersionFile = "VERSION"

var (
	alphaSuffix = regexp.MustCompile(`(?i)-(alpha|a\d+|0)$`)
	betaMarker  = regexp.MustCompile(`(?i)-(beta|b\d+|rc\d+)`)
)

// Info is a parsed version.
type Info struct {
	Version string
	Status  Status
}

// Parse classifies a version string. Explicit pre-release suffixes win;
// otherwise 0.0.x is alpha, 0.x is beta and anything else is stable.
func Parse(version string) Info {
	v := strings.TrimSpace(version)
	var s Status
	switch {
	case alphaSuffix.MatchString(v):
		s = Alpha
	case betaMarker.MatchString(v):
		s = Beta
	case strings.HasPrefix(v, "0.0."):
		s = Alpha
	case strings.HasPrefix(v, "0."):
		s = Beta
	default:
		s = Stable
	}
	return Info{Version: v, Status: s}
}

// ReadFile parses the version stored at path.
func ReadFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, errors.NotFoundError("version file not found").
				WithContext("path", path).
				Build()
		}
		return Info{}, errors.WrapError(err, errors.CategoryFileSystem, "read version file").
			WithContext("path", path).
			Build()
	}
	return Parse(string(data)), nil
}

// FileFor returns the VERSION path for a config: the parent of its docs
// directory.
func FileFor(cfg *mkdocs.Config) string {
	return filepath.Join(filepath.Dir(filepath.Clean(cfg.DocsDir())), VersionFile)
}

// Apply stores the status and version under extra: in cfg.
func Apply(cfg *mkdocs.Config, info Info) {
	cfg.SetExtra(ExtraStatusKey, string(info.Status))
	cfg.SetExtra(ExtraVersionKey, info.Version)
}
