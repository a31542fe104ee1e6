// Package version holds build metadata, overridden at link time with
// -ldflags "-X github.com/mj1618/desktop-annotator/internal/version.Version=...".
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
