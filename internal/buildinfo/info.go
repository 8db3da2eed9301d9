// Package buildinfo carries release metadata stamped in with
// -ldflags "-X github.com/cleared-dev/tally/internal/buildinfo.Version=...".
package buildinfo

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
