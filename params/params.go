// Package params resolves raw command-line option values into validated
// invocation parameters.
//
// Resolution is pure: it never touches the filesystem, so a bad project type
// or a missing specification path is reported before any document is read.
package params

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/erraggy/openapi-glue/oaserrors"
)

// ProjectType identifies the kind of project to generate.
type ProjectType string

const (
	// TypeJavaScript generates a fastify-cli plugin project.
	TypeJavaScript ProjectType = "javascript"
	// TypeStandaloneJS generates a project with its own server entry point.
	TypeStandaloneJS ProjectType = "standaloneJS"
)

// supportedTypes is ordered; the first entry is the default.
var supportedTypes = []ProjectType{TypeJavaScript, TypeStandaloneJS}

// SupportedTypes returns the supported project types, default first.
func SupportedTypes() []ProjectType {
	return slices.Clone(supportedTypes)
}

// DefaultType returns the project type used when none is requested.
func DefaultType() ProjectType {
	return supportedTypes[0]
}

// IsSupported reports whether t is one of the supported project types.
func IsSupported(t ProjectType) bool {
	return slices.Contains(supportedTypes, t)
}

// DefaultProjectName returns the name synthesized for a project of type t.
func DefaultProjectName(t ProjectType) string {
	return fmt.Sprintf("generated-%s-project", t)
}

// Output formats for checksum-only runs.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTxtar = "txtar"
)

var validFormats = []string{FormatJSON, FormatYAML, FormatTxtar}

// Options holds raw option values as supplied by the user.
// Zero values mean "not supplied".
type Options struct {
	ProjectName  string `koanf:"projectName"`
	BaseDir      string `koanf:"baseDir"`
	Type         string `koanf:"type"`
	ChecksumOnly bool   `koanf:"checksumOnly"`
	LocalPlugin  string `koanf:"localPlugin"`
	Format       string `koanf:"format"`
	Overlay      string `koanf:"overlay"`

	// TypeGiven marks Type as supplied even when empty, so an explicitly
	// empty type is refused instead of defaulted.
	TypeGiven bool `koanf:"-"`
}

// Invocation holds the resolved parameters of a single generator run.
type Invocation struct {
	// SpecificationPath is the path as given on the command line.
	SpecificationPath string
	// ProjectName is the directory name of the generated project.
	ProjectName string
	// BaseDirectory is the existing directory the project is created in.
	BaseDirectory string
	// ProjectType is the validated project type.
	ProjectType ProjectType
	// ChecksumOnly disables all writes in favour of a checksum manifest.
	ChecksumOnly bool
	// LocalPlugin is the local plugin override path; empty selects the published plugin.
	LocalPlugin string
	// OutputFormat selects how checksum-only results are rendered.
	OutputFormat string
	// OverlayPath is an optional OpenAPI Overlay applied before generation.
	OverlayPath string
}

// Resolve merges opts with defaults and validates them. args are the
// positional arguments; exactly one, the specification path, is expected.
// cwd is used as the default base directory.
func Resolve(opts Options, args []string, cwd string) (*Invocation, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, &oaserrors.UsageError{
			Option:  "specification",
			Message: "missing OpenAPI specification path",
		}
	}
	if len(args) > 1 {
		return nil, &oaserrors.UsageError{
			Option:  "specification",
			Value:   args,
			Message: fmt.Sprintf("expected exactly one OpenAPI specification path, got %d", len(args)),
		}
	}

	projectType := DefaultType()
	if opts.Type != "" || opts.TypeGiven {
		projectType = ProjectType(opts.Type)
	}
	if !IsSupported(projectType) {
		return nil, &oaserrors.UsageError{
			Option:  "type",
			Value:   opts.Type,
			Message: fmt.Sprintf("Unknown type: %s", opts.Type),
		}
	}

	format := opts.Format
	if format == "" {
		format = FormatJSON
	}
	if !slices.Contains(validFormats, format) {
		return nil, &oaserrors.UsageError{
			Option:  "format",
			Value:   format,
			Message: fmt.Sprintf("Unknown format: %s (valid formats: %v)", format, validFormats),
		}
	}

	name := opts.ProjectName
	if name == "" {
		name = DefaultProjectName(projectType)
	}
	if name == "." || name == ".." || filepath.Base(name) != name {
		return nil, &oaserrors.UsageError{
			Option:  "projectName",
			Value:   name,
			Message: fmt.Sprintf("invalid project name %q: must be a single directory name", name),
		}
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = cwd
	}

	return &Invocation{
		SpecificationPath: args[0],
		ProjectName:       name,
		BaseDirectory:     baseDir,
		ProjectType:       projectType,
		ChecksumOnly:      opts.ChecksumOnly,
		LocalPlugin:       opts.LocalPlugin,
		OutputFormat:      format,
		OverlayPath:       opts.Overlay,
	}, nil
}
