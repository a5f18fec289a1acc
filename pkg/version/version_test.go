package version_test

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/circbuf/pkg/version"
)

// Mutates package globals, so not parallel.
func TestApplyBuildInfo(t *testing.T) {
	saved := [3]string{version.Version, version.Commit, version.Date}

	t.Cleanup(func() {
		version.Version, version.Commit, version.Date = saved[0], saved[1], saved[2]
	})

	version.Version, version.Commit, version.Date = "dev", "none", "unknown"

	version.ApplyBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v1.4.0 (commit: abc123, built: 2026-01-02T03:04:05Z)", version.String())

	// ldflags values win over build info.
	version.Version = "v9"
	version.ApplyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "v9", version.Version)
}
