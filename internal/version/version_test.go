package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIdentity(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.0"

	info := GetInfo()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, String(), "v1.2.0 (unknown, built unknown with go")
	assert.Equal(t, "depr-e2e/v1.2.0", UserAgent())
}
