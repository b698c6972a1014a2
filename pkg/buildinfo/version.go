// Package buildinfo holds version information stamped at build time:
//
//	go build -ldflags "-X github.com/ntwkui/ntwk/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/ntwkui/ntwk/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/ntwkui/ntwk/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the build information as reported by the HTTP health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the build information on three lines.
func (i Info) String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
