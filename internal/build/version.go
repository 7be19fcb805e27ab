package build

import "fmt"

// Name is the program name used in version output.
const Name = "web-scraper"

// Set with -ldflags "-X github.com/CrazyVinc/web-scraper/internal/build.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Summary is the one-line banner printed by the version command.
func Summary() string {
	return fmt.Sprintf("%s %s (built %s)", Name, FullVersion(), BuildTime)
}
