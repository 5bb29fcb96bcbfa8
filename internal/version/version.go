// Package version carries the build identity of depr-e2e, set via -ldflags:
//
//	-X github.com/deprtest/e2e/internal/version.Version=v1.2.0
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the build identity in structured form.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String formats as "v1.2.0 (abc1234, built 2024-01-01 with go1.24)".
func String() string {
	return fmt.Sprintf("%s (%s, built %s with %s)", Version, GitCommit, BuildDate, runtime.Version())
}

// UserAgent identifies API requests sent by the suites.
func UserAgent() string {
	return "depr-e2e/" + Version
}
