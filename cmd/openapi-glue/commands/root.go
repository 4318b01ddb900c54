// Package commands implements the openapi-glue command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	openapiglue "github.com/erraggy/openapi-glue"
	"github.com/erraggy/openapi-glue/internal/cliutil"
	"github.com/erraggy/openapi-glue/internal/config"
	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/oaserrors"
	"github.com/erraggy/openapi-glue/orchestrator"
	"github.com/erraggy/openapi-glue/output"
	"github.com/erraggy/openapi-glue/params"
	"github.com/erraggy/openapi-glue/plugin"
)

const usageTemplate = `
Usage:
  {{.UseLine}}

Generate a project based on the provided openapi specification.
Any existing files in the project folder will be overwritten!

Options:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

 The -c and -l options are only useful for testing the openapi-glue plugin.
`

// NewRootCmd creates the openapi-glue command. Extra orchestrator options
// are appended to the ones derived from flags.
func NewRootCmd(extra ...orchestrator.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi-glue [flags] <openapi-specification-path>",
		Short: "Generate a fastify-openapi-glue project from an OpenAPI specification",
		Long: `Generate a project based on the provided openapi specification.
Any existing files in the project folder will be overwritten!`,
		Args:          cobra.ArbitraryArgs,
		Version:       openapiglue.Version(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, extra)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().SortFlags = false
	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetVersionTemplate("openapi-glue {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &oaserrors.UsageError{Message: err.Error()}
	})

	return cmd
}

func run(cmd *cobra.Command, args []string, extra []orchestrator.Option) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	cfg, err := config.Load(cmd.Flags(), cwd)
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.LogFormat, cfg.Verbose, cmd.ErrOrStderr())
	if cfg.File != "" {
		logger.Debug("loaded config file", "path", cfg.File)
	}

	inv, err := params.Resolve(cfg.Options, args, cwd)
	if err != nil {
		return err
	}

	pluginLevel := hclog.Error
	if cfg.Verbose {
		pluginLevel = hclog.Debug
	}

	opts := append([]orchestrator.Option{
		orchestrator.WithWorkDir(cwd),
		orchestrator.WithLogger(logger),
		orchestrator.WithBanner(cmd.ErrOrStderr()),
		orchestrator.WithLoaderOptions(plugin.WithPluginLogLevel(pluginLevel)),
	}, extra...)

	result, err := orchestrator.Run(cmd.Context(), inv, opts...)
	if err != nil {
		if cfg.Verbose {
			logging.LogError(logger, "generation failed", err)
		}
		return err
	}

	text, err := output.Format(result, inv.OutputFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// Execute runs the command line and returns the process exit status.
// Errors are printed as "Error: <message>"; usage errors are followed by
// the usage text.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	cliutil.Writef(stderr, "Error: %v\n", err)
	if errors.Is(err, oaserrors.ErrUsage) {
		cliutil.Writef(stderr, "%s", cmd.UsageString())
	}
	return 1
}
