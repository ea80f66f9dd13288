// Package version holds thedoc build information. It is a leaf package with
// no dependencies so any package can import it.
package version

var (
	// Set via ldflags during release builds.
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild reports whether this is a development build.
func IsDevBuild() bool {
	return Version == "dev"
}
