package context

import (
	"fmt"
	"regexp"
	"runtime"
	"runtime/debug"
	"strconv"
)

// The semantic version of the application. vcsVersion takes precedence.
const version = "0.1.0"

var (
	// Set at build time with -ldflags "-X ...vcsVersion=$(git describe --dirty)".
	vcsVersion string

	describeRx = regexp.MustCompile(
		`^v?(?P<semver>\d+\.\d+\.\d+(?:-[0-9A-Za-z.]+)??)(?:-(?P<distance>\d+)-g(?P<commit>[0-9a-f]{6,}))?(?P<dirty>-dirty)?$`)
)

// VersionInfo is the app version and build information.
type VersionInfo struct {
	Semantic    string `json:"version"`
	Commit      string `json:"commit,omitempty"`
	TagDistance int    `json:"tagDistance,omitempty"` // commits since the latest tag
	Dirty       bool   `json:"dirty,omitempty"`
	Go          string `json:"go"`
}

// GetVersion returns the app version. The version set at build time is
// preferred, and the VCS information embedded by the Go toolchain is used for
// whatever it doesn't provide.
func GetVersion() (*VersionInfo, error) {
	vi := &VersionInfo{
		Go: fmt.Sprintf("%s, %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}

	if vcsVersion != "" {
		if err := vi.UnmarshalText([]byte(vcsVersion)); err != nil {
			return nil, fmt.Errorf("failed reading VCS version '%s': %w", vcsVersion, err)
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		vi.fromBuildSettings(bi.Settings)
	}

	if vi.Semantic == "" {
		vi.Semantic = version
	}

	return vi, nil
}

func (vi *VersionInfo) String() string {
	if vi.Commit == "" {
		return fmt.Sprintf("v%s (%s)", vi.Semantic, vi.Go)
	}

	build := "commit/" + vi.Commit
	if vi.TagDistance > 0 {
		build += fmt.Sprintf("-%d", vi.TagDistance)
	}
	if vi.Dirty {
		build += "-dirty"
	}

	return fmt.Sprintf("v%s (%s, %s)", vi.Semantic, build, vi.Go)
}

// UnmarshalText parses the output of `git describe --dirty`.
func (vi *VersionInfo) UnmarshalText(data []byte) error {
	m := describeRx.FindStringSubmatch(string(data))
	if m == nil {
		return fmt.Errorf("unrecognized version format")
	}

	for i, name := range describeRx.SubexpNames() {
		switch name {
		case "semver":
			vi.Semantic = m[i]
		case "commit":
			vi.Commit = m[i]
		case "distance":
			if m[i] != "" {
				vi.TagDistance, _ = strconv.Atoi(m[i])
			}
		case "dirty":
			vi.Dirty = m[i] != ""
		}
	}

	return nil
}

func (vi *VersionInfo) fromBuildSettings(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if vi.Commit == "" {
				vi.Commit = s.Value[:min(len(s.Value), 10)]
			}
		case "vcs.modified":
			vi.Dirty = vi.Dirty || s.Value == "true"
		}
	}
}
