package openapiglue

import "fmt"

var (
	// version is set via ldflags during release builds.
	// For development builds, this will show "dev"
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or 'unknown'.
func BuildTime() string {
	return buildTime
}

// UserAgent identifies the host to plugins and MCP clients.
func UserAgent() string {
	return fmt.Sprintf("openapi-glue/%s", version)
}
