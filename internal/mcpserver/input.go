package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
)

// specInput represents the two ways a spec can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// resolve returns a path to the document. Inline content is written to a
// temporary file that cleanup removes.
func (s specInput) resolve() (path string, cleanup func(), err error) {
	cleanup = func() {}
	switch {
	case s.File != "" && s.Content != "":
		return "", cleanup, fmt.Errorf("exactly one of file or content must be provided")
	case s.File != "":
		return s.File, cleanup, nil
	case s.Content != "":
		dir, err := os.MkdirTemp("", "openapi-glue-mcp-")
		if err != nil {
			return "", cleanup, fmt.Errorf("staging inline spec: %w", err)
		}
		cleanup = func() { _ = os.RemoveAll(dir) }
		path = filepath.Join(dir, "openapi.yaml")
		if err := os.WriteFile(path, []byte(s.Content), 0o600); err != nil {
			cleanup()
			return "", func() {}, fmt.Errorf("staging inline spec: %w", err)
		}
		return path, cleanup, nil
	default:
		return "", cleanup, fmt.Errorf("exactly one of file or content must be provided")
	}
}
