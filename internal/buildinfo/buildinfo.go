// Package buildinfo carries version metadata injected at link time:
//
//	go build -ldflags "-X github.com/aalvaropc/quadra/internal/buildinfo.Version=v0.1.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("quadra %s (commit=%s, date=%s)", Version, Commit, Date)
}
