// Package version holds build information set through -ldflags.
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String returns the version in the form shown by --version
func String() string {
	return Version + " (" + Commit + ") " + BuildTime
}
