// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/netfile/pkg/buildinfo.Version=0.6.0 \
//	    -X github.com/matzehuels/netfile/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/netfile/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Version is also the producing-application version stamped into every
// saved network, so it should stay a dotted numeral.
package buildinfo

import "fmt"

var (
	// Version is the dotted application version (e.g., "0.6.0").
	// Set via ldflags: -X github.com/matzehuels/netfile/pkg/buildinfo.Version=...
	Version = "0.0.0-dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/netfile/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/netfile/pkg/buildinfo.Date=...
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
