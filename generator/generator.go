package generator

import (
	"context"
	"fmt"

	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/params"
	"github.com/erraggy/openapi-glue/plugin"
	"github.com/erraggy/openapi-glue/specloader"
)

const (
	// Name is the published plugin name.
	Name = plugin.PublishedName
	// Version is the version of this generation strategy.
	Version = "v1.2.0"
	// DefaultHeader starts every generated JavaScript file.
	DefaultHeader = "// generated by openapi-glue, edit as needed"
)

// Option configures a Generator.
type Option func(*Generator)

// WithHeader replaces the comment line that starts every generated
// JavaScript file.
func WithHeader(header string) Option {
	return func(g *Generator) {
		g.header = header
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// Generator implements plugin.Generator for the javascript and
// standaloneJS project types. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	header string
	logger logging.Logger
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{header: DefaultHeader, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Published returns the catalog of published versions of this strategy.
func Published() plugin.Catalog {
	return plugin.Catalog{{
		Name:    Name,
		Version: Version,
		New:     func() plugin.Generator { return New() },
	}}
}

// Describe implements plugin.Generator.
func (g *Generator) Describe(context.Context) (*plugin.Descriptor, error) {
	types := make([]string, 0, len(params.SupportedTypes()))
	for _, t := range params.SupportedTypes() {
		types = append(types, string(t))
	}
	return &plugin.Descriptor{Name: Name, Version: Version, Types: types}, nil
}

// Generate implements plugin.Generator.
func (g *Generator) Generate(ctx context.Context, req *plugin.GenerateRequest) (*plugin.GenerateResponse, error) {
	projectType := params.ProjectType(req.ProjectType)
	if !params.IsSupported(projectType) {
		return nil, fmt.Errorf("generator: unsupported project type %q", req.ProjectType)
	}
	if req.ProjectName == "" {
		return nil, fmt.Errorf("generator: project name is required")
	}

	doc, err := specloader.FromJSON(ctx, req.Specification)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	data, err := buildProject(doc, req.ProjectName, projectType, g.header)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	files, err := render(data)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	g.logger.Debug("generated project",
		"type", req.ProjectType,
		"operations", len(data.Operations),
		"files", len(files))
	return &plugin.GenerateResponse{Files: files}, nil
}

var _ plugin.Generator = (*Generator)(nil)
