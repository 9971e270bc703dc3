package inkwell

import (
	_ "embed"
	"regexp"
	"runtime/debug"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version without the leading `v`.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag is Version as a git tag.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// UserAgent identifies inkwell in preview server responses.
func UserAgent() string {
	return "inkwell/" + Version()
}

// Build describes the binary: the embedded version plus whatever VCS
// stamping the Go toolchain recorded.
type Build struct {
	Version  string
	Commit   string
	Time     string
	Modified bool
}

// ReadBuild returns the Build of the running binary. Commit and Time are
// empty when the binary was built without VCS information (go test, go run
// outside a checkout).
func ReadBuild() Build {
	b := Build{Version: Version()}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	return buildFromSettings(b, info.Settings)
}

func buildFromSettings(b Build, settings []debug.BuildSetting) Build {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value
		case "vcs.time":
			b.Time = s.Value
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// ShortCommit is the first 12 characters of Commit, with a "-dirty" suffix
// for modified trees. It is "unknown" when no commit was recorded.
func (b Build) ShortCommit() string {
	if b.Commit == "" {
		return "unknown"
	}
	c := b.Commit
	if len(c) > 12 {
		c = c[:12]
	}
	if b.Modified {
		c += "-dirty"
	}
	return c
}
