// Package version reports the build identity of the payscope binaries
package version

// BuildInfo holds version information about a build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X payscope/internal/core/version.version=v0.3.0 -X ...commit=abcd -X ...date=2026-10-01"
var (
	service = "payscope-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for the running binary
func Info() BuildInfo {
	return BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
}

// For returns Info relabelled for another binary of the repo, such as the CLI
func For(name string) BuildInfo {
	bi := Info()
	if name != "" {
		bi.Service = name
	}
	return bi
}
