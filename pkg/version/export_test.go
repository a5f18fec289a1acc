package version

import "runtime/debug"

// ApplyBuildInfo exposes applyBuildInfo for testing.
func ApplyBuildInfo(info *debug.BuildInfo) { applyBuildInfo(info) }
