package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erraggy/openapi-glue/generator"
	"github.com/erraggy/openapi-glue/internal/cliutil"
	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/oaserrors"
	"github.com/erraggy/openapi-glue/params"
	"github.com/erraggy/openapi-glue/plugin"
	"github.com/erraggy/openapi-glue/specloader"
)

// Option configures a Generator and Run.
type Option func(*config)

type config struct {
	checksumOnly    bool
	manifestContent bool
	logger          logging.Logger
	specOpts        []specloader.Option
	catalog         plugin.Catalog
	loaderOpts      []plugin.LoaderOption
	banner          io.Writer
	workDir         string
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: logging.NopLogger{}, banner: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = generator.Published()
	}
	return cfg
}

// WithChecksumOnly selects checksum-only mode: nothing is written and the
// result carries a manifest.
func WithChecksumOnly(enabled bool) Option {
	return func(c *config) {
		c.checksumOnly = enabled
	}
}

// WithManifestContent makes the checksum manifest hold raw file contents
// instead of sha256 digests.
func WithManifestContent(enabled bool) Option {
	return func(c *config) {
		c.manifestContent = enabled
	}
}

// WithLogger sets the logger. It is also handed to the specification loader
// and the plugin loader by Run.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSpecOptions adds options passed to specloader.Load by Parse.
func WithSpecOptions(opts ...specloader.Option) Option {
	return func(c *config) {
		c.specOpts = append(c.specOpts, opts...)
	}
}

// WithCatalog sets the published plugin catalog used by Run.
// Default: generator.Published().
func WithCatalog(catalog plugin.Catalog) Option {
	return func(c *config) {
		c.catalog = catalog
	}
}

// WithLoaderOptions adds options for the plugin loader built by Run.
func WithLoaderOptions(opts ...plugin.LoaderOption) Option {
	return func(c *config) {
		c.loaderOpts = append(c.loaderOpts, opts...)
	}
}

// WithBanner sets where Run announces a local plugin. Default: os.Stderr.
// A nil writer silences the announcement.
func WithBanner(w io.Writer) Option {
	return func(c *config) {
		c.banner = w
	}
}

// WithWorkDir sets the directory Run resolves relative paths against.
// Default: the process working directory.
func WithWorkDir(dir string) Option {
	return func(c *config) {
		c.workDir = dir
	}
}

// Generator coordinates one generation run.
type Generator struct {
	loader plugin.Loader
	cfg    *config
	spec   *specloader.Specification
}

// New creates a Generator that sources files from the plugin loader.
func New(loader plugin.Loader, opts ...Option) *Generator {
	return &Generator{loader: loader, cfg: newConfig(opts)}
}

// ChecksumOnly reports whether the Generator runs in checksum-only mode.
func (g *Generator) ChecksumOnly() bool { return g.cfg.checksumOnly }

// Specification returns the parsed specification, or nil before Parse.
func (g *Generator) Specification() *specloader.Specification { return g.spec }

// Parse loads and validates the specification at specPath and retains it.
// A failed Parse leaves any previously parsed specification in place.
func (g *Generator) Parse(ctx context.Context, specPath string) error {
	opts := append([]specloader.Option{specloader.WithLogger(g.cfg.logger)}, g.cfg.specOpts...)
	spec, err := specloader.Load(ctx, specPath, opts...)
	if err != nil {
		return err
	}
	g.spec = spec
	return nil
}

// GenerateProject generates the project of projectType. In materialize mode
// the files are written to baseDir/projectName, overwriting existing files;
// in checksum-only mode the result carries the manifest instead.
//
// Parse must have succeeded first, otherwise oaserrors.ErrNotParsed is
// returned.
func (g *Generator) GenerateProject(ctx context.Context, baseDir, projectName string, projectType params.ProjectType) (*Result, error) {
	if g.spec == nil {
		return nil, oaserrors.ErrNotParsed
	}
	if g.loader == nil {
		return nil, &oaserrors.PluginLoadError{Message: "no plugin loader configured"}
	}

	dir := filepath.Join(baseDir, projectName)
	var sink Sink
	if g.cfg.checksumOnly {
		sink = newChecksumSink(dir, g.cfg.manifestContent)
	} else {
		sink = newDiskSink(baseDir, projectName)
	}
	if err := sink.Prepare(); err != nil {
		return nil, err
	}

	log := g.cfg.logger.With("type", string(projectType), "project", projectName)

	inst, err := g.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := inst.Close(); cerr != nil {
			log.Warn("closing plugin", "error", cerr)
		}
	}()

	desc := inst.Descriptor()
	pluginID := desc.Name + "@" + desc.Version
	if !desc.Supports(string(projectType)) {
		return nil, &oaserrors.GenerationError{
			ProjectType: string(projectType),
			Message:     fmt.Sprintf("plugin %s supports %s", pluginID, strings.Join(desc.Types, ", ")),
		}
	}

	resp, err := inst.Generate(ctx, &plugin.GenerateRequest{
		ProjectType:   string(projectType),
		ProjectName:   projectName,
		Specification: g.spec.JSON(),
	})
	if err != nil {
		return nil, &oaserrors.GenerationError{
			ProjectType: string(projectType),
			Message:     "plugin " + pluginID + " failed",
			Cause:       err,
		}
	}

	files := slices.Clone(resp.Files)
	if err := validateFiles(string(projectType), files); err != nil {
		return nil, err
	}
	slices.SortFunc(files, func(a, b plugin.File) int { return strings.Compare(a.Path, b.Path) })

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sink.Put(f.Path, f.Content); err != nil {
			return nil, err
		}
	}

	result := sink.Result()
	result.Plugin = pluginID
	log.Debug("generated project", "plugin", pluginID, "files", len(result.Files), "checksumOnly", result.ChecksumOnly)
	return result, nil
}

// validateFiles rejects paths that are empty, absolute, unclean, outside
// the project directory, or duplicated.
func validateFiles(projectType string, files []plugin.File) error {
	if len(files) == 0 {
		return &oaserrors.GenerationError{ProjectType: projectType, Message: "plugin returned no files"}
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		fail := func(msg string) error {
			return &oaserrors.GenerationError{ProjectType: projectType, File: f.Path, Message: msg}
		}
		switch {
		case f.Path == "":
			return fail("empty file path")
		case strings.Contains(f.Path, `\`):
			return fail("path must use forward slashes")
		case path.IsAbs(f.Path) || filepath.IsAbs(f.Path):
			return fail("path must be relative")
		case path.Clean(f.Path) != f.Path:
			return fail("path must be clean")
		case f.Path == ".." || strings.HasPrefix(f.Path, "../"):
			return fail("path escapes project directory")
		case seen[f.Path]:
			return fail("duplicate file path")
		}
		seen[f.Path] = true
	}
	return nil
}

// Run executes the whole pipeline for inv: resolve the plugin, load the
// specification, and generate the project.
func Run(ctx context.Context, inv *params.Invocation, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)

	cwd := cfg.workDir
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: working directory: %w", err)
		}
		cwd = wd
	}

	sel := plugin.Resolve(inv.LocalPlugin, cwd)
	if banner := sel.Banner(); banner != "" {
		cliutil.Writeln(cfg.banner, banner)
	}
	cfg.logger.Debug("resolved plugin", "selection", sel.String())

	loaderOpts := append([]plugin.LoaderOption{plugin.WithLogger(cfg.logger)}, cfg.loaderOpts...)
	loader := sel.Loader(cfg.catalog, loaderOpts...)

	specOpts := []specloader.Option{specloader.WithWorkDir(cwd)}
	if inv.OverlayPath != "" {
		specOpts = append(specOpts, specloader.WithOverlay(inv.OverlayPath))
	}

	runOpts := append(slices.Clone(opts),
		WithChecksumOnly(inv.ChecksumOnly),
		WithManifestContent(inv.ChecksumOnly && inv.OutputFormat == params.FormatTxtar),
		WithSpecOptions(specOpts...),
	)
	g := New(loader, runOpts...)

	if err := g.Parse(ctx, inv.SpecificationPath); err != nil {
		return nil, err
	}

	baseDir := inv.BaseDirectory
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(cwd, baseDir)
	}
	return g.GenerateProject(ctx, baseDir, inv.ProjectName, inv.ProjectType)
}
