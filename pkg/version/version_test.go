package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBuildInfo replaces the embedded build information and the ldflags
// values for one test.
func withBuildInfo(t *testing.T, bi *debug.BuildInfo, version, commit, date string) {
	t.Helper()
	origRead, origVersion, origCommit, origDate := readBuildInfo, Version, GitCommit, BuildDate
	t.Cleanup(func() {
		readBuildInfo, Version, GitCommit, BuildDate = origRead, origVersion, origCommit, origDate
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	Version, GitCommit, BuildDate = version, commit, date
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.Equal(t, "dbusname", info.Program)
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}

func TestGetBuildInfo_LdflagsWin(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.9.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fromvcs"},
			{Key: "vcs.time", Value: "2025-01-01T00:00:00Z"},
		},
	}, "v1.0.0", "abc123", "2026-01-13T20:00:00Z")

	info := GetBuildInfo()
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "2026-01-13T20:00:00Z", info.BuildDate)
	assert.True(t, info.BuildTime.Equal(time.Date(2026, 1, 13, 20, 0, 0, 0, time.UTC)))
}

func TestGetBuildInfo_FallsBackToModule(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1a2b3c4"},
			{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, "dev", unset, unset)

	info := GetBuildInfo()
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "1a2b3c4", info.GitCommit)
	assert.Equal(t, "2026-02-01T10:00:00Z", info.BuildDate)
	assert.True(t, info.Modified)
	assert.False(t, info.BuildTime.IsZero())
	assert.Contains(t, info.String(), "commit: 1a2b3c4-dirty")
}

func TestGetBuildInfo_DevelModule(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev", unset, unset)

	info := GetBuildInfo()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, unset, info.GitCommit)
	assert.True(t, info.BuildTime.IsZero())
}

func TestGetBuildInfo_NoEmbeddedInfo(t *testing.T) {
	withBuildInfo(t, nil, "dev", unset, "not-a-date")

	info := GetBuildInfo()
	assert.Equal(t, "dev", info.Version)
	assert.True(t, info.BuildTime.IsZero())
}

func TestBuildInfoString(t *testing.T) {
	withBuildInfo(t, nil, "v1.2.3", "abc123", unset)

	s := GetBuildInfo().String()
	require.NotEmpty(t, s)
	for _, want := range []string{"dbusname v1.2.3", "commit: abc123", "built: unknown", GoVersion, Platform} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, s, "-dirty")
}
