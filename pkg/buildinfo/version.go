// Package buildinfo holds the version stamped into venture binaries.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/ryanphanna/Venture/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/ryanphanna/Venture/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/ryanphanna/Venture/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/venture
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, shortCommit(Commit), Date)
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
