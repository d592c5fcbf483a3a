// Package version reports the build version of clampwind.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time via ldflags
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes a build
type Info struct {
	Version string
	Commit  string
	Time    string
	Dirty   bool
}

// Get returns the build information. ldflags values win; otherwise the
// module version and VCS stamps recorded by the go tool are used.
func Get() Info {
	info := Info{Version: Version, Commit: GitCommit, Time: BuildTime}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fromBuildInfo(info, bi)
}

func fromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Time == "" {
				info.Time = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// String formats the version as "v1.2.3 (abc1234, dirty)"
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, commit)
	}
	if i.Dirty {
		details = append(details, "dirty")
	}
	if i.Time != "" {
		details = append(details, i.Time)
	}
	if len(details) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(details, ", "))
}
