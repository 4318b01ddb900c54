package mcpserver

import (
	"context"
	"os"

	"github.com/erraggy/openapi-glue/orchestrator"
	"github.com/erraggy/openapi-glue/params"
	"github.com/erraggy/openapi-glue/plugin"
)

// tools holds the handlers and the configuration they share.
type tools struct {
	cfg *serverConfig
	// extra is appended to the orchestrator options of every run (for testing).
	extra []orchestrator.Option
}

// projectInput holds the fields common to both tools.
type projectInput struct {
	Spec        specInput
	Type        string
	ProjectName string
	Overlay     string
	LocalPlugin string
}

// runInfo describes the plugin that served a run.
type runInfo struct {
	Plugin string
	Notice string
}

// run resolves the parameters and executes the pipeline. A local plugin
// notice is returned instead of being printed, since stdout is the MCP
// transport.
func (t *tools) run(ctx context.Context, in projectInput, opts params.Options) (*orchestrator.Result, runInfo, error) {
	specPath, cleanup, err := in.Spec.resolve()
	if err != nil {
		return nil, runInfo{}, err
	}
	defer cleanup()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, runInfo{}, err
	}

	opts.Type = in.Type
	opts.ProjectName = in.ProjectName
	opts.Overlay = in.Overlay
	opts.LocalPlugin = in.LocalPlugin
	if opts.LocalPlugin == "" {
		opts.LocalPlugin = t.cfg.LocalPlugin
	}

	inv, err := params.Resolve(opts, []string{specPath}, cwd)
	if err != nil {
		return nil, runInfo{}, err
	}

	runOpts := append([]orchestrator.Option{
		orchestrator.WithWorkDir(cwd),
		orchestrator.WithBanner(nil),
	}, t.extra...)
	result, err := orchestrator.Run(ctx, inv, runOpts...)
	if err != nil {
		return nil, runInfo{}, err
	}
	return result, runInfo{
		Plugin: result.Plugin,
		Notice: plugin.Resolve(inv.LocalPlugin, cwd).Banner(),
	}, nil
}
