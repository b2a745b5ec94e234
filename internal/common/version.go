package common

import "fmt"

// ServiceName identifies this API in version output and the startup banner
const ServiceName = "sfb-self-assessment"

// Overridden at link time, e.g.
// -ldflags "-X github.com/ternarybob/sfb/internal/common.Version=1.4.0"
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Build     string `json:"build"`
	GitCommit string `json:"git_commit"`
}

// CurrentBuild returns the link-time build details
func CurrentBuild() BuildInfo {
	return BuildInfo{
		Service:   ServiceName,
		Version:   Version,
		Build:     Build,
		GitCommit: GitCommit,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (build %s, commit %s)", b.Service, b.Version, b.Build, b.GitCommit)
}
