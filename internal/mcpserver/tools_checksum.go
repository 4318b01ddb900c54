package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/openapi-glue/params"
)

type checksumInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI document to generate from"`
	Type        string    `json:"type,omitempty"         jsonschema:"Project type: javascript (default) or standaloneJS"`
	ProjectName string    `json:"project_name,omitempty" jsonschema:"Project directory name (default: generated-<type>-project)"`
	Overlay     string    `json:"overlay,omitempty"      jsonschema:"Path to an OpenAPI Overlay applied before generation"`
	LocalPlugin string    `json:"local_plugin,omitempty" jsonschema:"Path to a local plugin executable used instead of the published plugin"`
	Content     bool      `json:"content,omitempty"      jsonschema:"Return file contents instead of sha256 digests"`
}

type checksumOutput struct {
	Plugin    string            `json:"plugin"`
	Notice    string            `json:"notice,omitempty"`
	FileCount int               `json:"file_count"`
	Files     []string          `json:"files"`
	Manifest  map[string]string `json:"manifest"`
	Content   bool              `json:"content,omitempty"`
}

func (t *tools) handleChecksum(ctx context.Context, _ *mcp.CallToolRequest, input checksumInput) (*mcp.CallToolResult, checksumOutput, error) {
	opts := params.Options{ChecksumOnly: true, Format: params.FormatJSON}
	if input.Content {
		opts.Format = params.FormatTxtar
	}

	in := projectInput{
		Spec:        input.Spec,
		Type:        input.Type,
		ProjectName: input.ProjectName,
		Overlay:     input.Overlay,
		LocalPlugin: input.LocalPlugin,
	}
	result, info, err := t.run(ctx, in, opts)
	if err != nil {
		return errResult(err), checksumOutput{}, nil
	}

	return nil, checksumOutput{
		Plugin:    info.Plugin,
		Notice:    info.Notice,
		FileCount: len(result.Files),
		Files:     result.Files,
		Manifest:  result.Manifest,
		Content:   result.ContentManifest,
	}, nil
}
