// Package version reports build information for the /version endpoint and
// the startup log. Values come from -ldflags when set and fall back to the
// VCS stamps in the Go build info:
//
//	go build -ldflags "-X github.com/kbukum/authgate/version.Version=1.2.0" ./cmd/authgate
package version
