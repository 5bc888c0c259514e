// Package version provides build version information embedding.
package version

import (
	"runtime/debug"
)

// Version is set at build time using -ldflags. Builds installed straight
// from the module proxy fall back to the embedded module version.
var Version = "dev"

// Release returns the version string, consulting the binary's build info
// when no version was linked in.
func Release() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" && info.Main.Version != "" {
		return info.Main.Version
	}
	return Version
}

// UserAgent returns the User-Agent value sent with outbound API requests.
func UserAgent() string {
	return "flytrap/" + Release()
}
