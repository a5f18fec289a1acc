// Package version carries build metadata for the circbuf binary.
package version

import "runtime/debug"

// Set through -ldflags "-X" at release build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion fills unset metadata from the module build info, which
// covers binaries installed with "go install".
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	applyBuildInfo(info)
}

func applyBuildInfo(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// String formats the metadata as "version (commit: ..., built: ...)".
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
