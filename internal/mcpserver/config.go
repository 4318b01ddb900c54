package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds the MCP server defaults, read once at startup from
// environment variables via loadConfig().
type serverConfig struct {
	// AllowWrite registers the generate tool.
	AllowWrite bool
	// LocalPlugin is used when a tool call names no local plugin.
	LocalPlugin string
}

// loadConfig reads configuration from OPENAPI_GLUE_MCP_* environment
// variables. Invalid values log a warning and fall back to the default.
func loadConfig() *serverConfig {
	return &serverConfig{
		AllowWrite:  envBool("OPENAPI_GLUE_MCP_ALLOW_WRITE", true),
		LocalPlugin: os.Getenv("OPENAPI_GLUE_MCP_LOCAL_PLUGIN"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}
