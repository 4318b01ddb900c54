package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/openapi-glue/params"
)

type generateInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OpenAPI document to generate from"`
	BaseDir     string    `json:"base_dir"               jsonschema:"Existing directory the project folder is created in"`
	Type        string    `json:"type,omitempty"         jsonschema:"Project type: javascript (default) or standaloneJS"`
	ProjectName string    `json:"project_name,omitempty" jsonschema:"Project directory name (default: generated-<type>-project)"`
	Overlay     string    `json:"overlay,omitempty"      jsonschema:"Path to an OpenAPI Overlay applied before generation"`
	LocalPlugin string    `json:"local_plugin,omitempty" jsonschema:"Path to a local plugin executable used instead of the published plugin"`
}

type generatedFileInfo struct {
	Name string `json:"name"`
}

type generateOutput struct {
	Plugin    string              `json:"plugin"`
	Notice    string              `json:"notice,omitempty"`
	Success   bool                `json:"success"`
	Directory string              `json:"directory"`
	FileCount int                 `json:"file_count"`
	Files     []generatedFileInfo `json:"files"`
}

func (t *tools) handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.BaseDir == "" {
		return errResult(fmt.Errorf("base_dir is required")), generateOutput{}, nil
	}

	in := projectInput{
		Spec:        input.Spec,
		Type:        input.Type,
		ProjectName: input.ProjectName,
		Overlay:     input.Overlay,
		LocalPlugin: input.LocalPlugin,
	}
	result, info, err := t.run(ctx, in, params.Options{BaseDir: input.BaseDir})
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Plugin:    info.Plugin,
		Notice:    info.Notice,
		Success:   true,
		Directory: result.Directory,
		FileCount: len(result.Files),
	}
	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{Name: f})
	}
	return nil, output, nil
}
