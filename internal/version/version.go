package version

// Build information, overridden at link time:
// -X github.com/arthur-debert/snortamv/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
