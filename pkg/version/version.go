// Package version reports what dbusname binary is running. Release builds set
// Version, GitCommit and BuildDate with -ldflags; binaries built with
// `go install` fall back to the module and VCS data the toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Program is the binary name reported by the version command.
const Program = "dbusname"

const unset = "unknown"

var (
	Version   = "dev"
	GitCommit = unset
	BuildDate = unset

	GoVersion = runtime.Version()
	Platform  = runtime.GOOS + "/" + runtime.GOARCH

	readBuildInfo = debug.ReadBuildInfo
)

// BuildInfo is what `dbusname version` prints.
type BuildInfo struct {
	Program   string    `json:"program" yaml:"program"`
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string    `json:"buildDate" yaml:"buildDate"`
	Modified  bool      `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string    `json:"goVersion" yaml:"goVersion"`
	Platform  string    `json:"platform" yaml:"platform"`
	BuildTime time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
}

// GetBuildInfo merges the ldflags values with the embedded build information.
// Values set with -ldflags win.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Program:   Program,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		fillFromModule(&info, bi)
	}

	if t, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		info.BuildTime = t
	}
	return info
}

func fillFromModule(info *BuildInfo, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == unset {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == unset {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// String renders the one-line form, e.g.
// "dbusname v0.3.0 (commit: 1a2b3c4, built: 2026-01-13T20:00:00Z, go1.25.0 linux/amd64)".
func (b BuildInfo) String() string {
	commit := b.GitCommit
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s %s)", b.Program, b.Version, commit, b.BuildDate, b.GoVersion, b.Platform)
}
