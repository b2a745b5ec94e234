package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentBuild(t *testing.T) {
	saved := [3]string{Version, Build, GitCommit}
	t.Cleanup(func() { Version, Build, GitCommit = saved[0], saved[1], saved[2] })

	Version, Build, GitCommit = "1.4.0", "2024-03-01T09:00:00Z", "a1b2c3d"

	info := CurrentBuild()
	assert.Equal(t, BuildInfo{Service: ServiceName, Version: "1.4.0", Build: "2024-03-01T09:00:00Z", GitCommit: "a1b2c3d"}, info)
	assert.Equal(t, "sfb-self-assessment 1.4.0 (build 2024-03-01T09:00:00Z, commit a1b2c3d)", info.String())
}
