package build_test

import (
	"testing"

	"github.com/CrazyVinc/web-scraper/internal/build"
	"github.com/stretchr/testify/assert"
)

// stamp overrides the link-time variables for one test.
func stamp(t *testing.T, version, commit, builtAt string) {
	t.Helper()
	prevVersion, prevCommit, prevBuildTime := build.Version, build.Commit, build.BuildTime
	t.Cleanup(func() {
		build.Version, build.Commit, build.BuildTime = prevVersion, prevCommit, prevBuildTime
	})
	build.Version, build.Commit, build.BuildTime = version, commit, builtAt
}

func TestFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"defaults", "dev", "none", "dev+none"},
		{"release", "1.0.0", "abc123", "1.0.0+abc123"},
		{"missing commit", "1.0.0", "", "1.0.0+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, "unknown")
			assert.Equal(t, tt.want, build.FullVersion())
		})
	}
}

func TestSummary(t *testing.T) {
	stamp(t, "0.3.1", "89dece5", "2026-10-01T12:00:00Z")
	assert.Equal(t, "web-scraper 0.3.1+89dece5 (built 2026-10-01T12:00:00Z)", build.Summary())
}
