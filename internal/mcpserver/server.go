// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes openapi-glue project generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	openapiglue "github.com/erraggy/openapi-glue"
)

const serverInstructions = `openapi-glue MCP server: generates fastify-openapi-glue Node.js projects from OpenAPI specs.

Tools:
- checksum: dry run. Returns the files a project would contain with sha256 digests (or contents with content=true). Never writes to disk.
- generate: writes the project to base_dir/project_name, overwriting existing files.

Project types: javascript (fastify-cli plugin, default) and standaloneJS (adds server.js).

Configuration via environment variables set in your MCP client config:
- OPENAPI_GLUE_MCP_ALLOW_WRITE (default: true): set false to disable the generate tool
- OPENAPI_GLUE_MCP_LOCAL_PLUGIN: default local plugin path used instead of the published plugin`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	return NewServer(loadConfig()).Run(ctx, &mcp.StdioTransport{})
}

// NewServer creates the MCP server with all tools registered.
func NewServer(cfg *serverConfig) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "openapi-glue", Version: openapiglue.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, &tools{cfg: cfg})
	return server
}

func registerAllTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "checksum",
		Description: "Compute the files an OpenAPI spec would generate without writing anything. Returns a manifest mapping each relative path to its sha256 digest, or to its content with content=true. Use it to preview a project or to compare generator versions.",
	}, t.handleChecksum)

	if t.cfg.AllowWrite {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "generate",
			Description: "Generate a fastify-openapi-glue project from an OpenAPI spec into base_dir/project_name. base_dir must already exist. Existing files in the project folder are overwritten. Returns the list of written files.",
		}, t.handleGenerate)
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
