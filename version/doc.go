// Package version reports the build version of the coursequery binary.
//
// Version, commit, branch and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/coursequery/version.Version=1.0.0" ./cmd/coursequery
package version
