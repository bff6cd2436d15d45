// Package build exposes build-time metadata injected via ldflags.
package build

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/halemd30/Bookmarks-server/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// String renders the metadata on one line for `bookmarks version` and startup logs.
func String() string {
	return Version + " (commit " + Commit + ", branch " + Branch + ")"
}
