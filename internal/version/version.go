// Package version exposes prodex build metadata. The release pipeline
// stamps these via -ldflags "-X ...".
package version

//nolint:revive // ldflags targets must stay exported package vars.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
