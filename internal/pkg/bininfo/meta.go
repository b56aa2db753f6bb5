// Package bininfo carries build metadata injected through -ldflags "-X".
// The variable names are part of the build scripts; keep them stable.
package bininfo

var (
	// Version is the SemVer of the binary, optionally suffixed with "+<commit>".
	Version = "v0.0.0"

	// BuildTime is an RFC 3339 timestamp.
	BuildTime = "1970-01-01T00:00:00Z"
)

// Map is the payload served by the meta endpoints.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"build":   BuildTime,
	}
}
