// Package build holds version metadata injected at link time via
// -ldflags "-X github.com/edu-ciaa/enigma-sim/cmd/enigma/build.Version=...".
package build

var (
	Version = "dev"
	Commit  = "none"
	Time    = "unknown"
)
