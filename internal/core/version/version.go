// Package version reports the build stamped into the binaries
package version

// BuildInfo describes one build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set with -ldflags "-X trainerbot/internal/core/version.version=v0.1.0
// -X trainerbot/internal/core/version.commit=abcd -X trainerbot/internal/core/version.date=2026-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build info for service
func Info(service string) BuildInfo {
	if service == "" {
		service = "trainerbot"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String is the one line form printed by --version flags
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
