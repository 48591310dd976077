package version

// Version is the current version of the tickbench engine.
// This value can be overridden at build time using ldflags:
// -ldflags "-X github.com/MohanLi/tickbench/internal/version.Version=1.2.3"
// The value "main" indicates a development build and skips config
// compatibility checks.
var Version = "v0.4.0"

// GetVersion returns the current version of the engine.
func GetVersion() string {
	return Version
}
