package plugin

import (
	"context"
	"io"
)

// File is one generated artifact.
type File struct {
	// Path is relative to the project directory and uses forward slashes.
	Path string
	// Content is the exact file content.
	Content []byte
}

// GenerateRequest asks a plugin to generate one project.
type GenerateRequest struct {
	// ProjectType is one of the types listed in the plugin's Descriptor.
	ProjectType string
	// ProjectName is the name of the project directory.
	ProjectName string
	// Specification is the canonical JSON encoding of the validated document.
	Specification []byte
}

// GenerateResponse carries the generated files.
type GenerateResponse struct {
	Files []File
}

// Descriptor identifies a plugin.
type Descriptor struct {
	Name    string
	Version string
	// Types lists the supported project types.
	Types []string
}

// Supports reports whether the plugin declares projectType.
func (d *Descriptor) Supports(projectType string) bool {
	for _, t := range d.Types {
		if t == projectType {
			return true
		}
	}
	return false
}

// Generator is the contract every plugin implements.
type Generator interface {
	Describe(ctx context.Context) (*Descriptor, error)
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// Instance is a loaded plugin. Close releases its resources; for local
// plugins it kills the subprocess.
type Instance interface {
	Generator
	io.Closer
	// Descriptor returns the descriptor obtained while loading.
	Descriptor() *Descriptor
}

// Loader loads the plugin chosen by a Selection.
type Loader interface {
	Load(ctx context.Context) (Instance, error)
	Selection() Selection
}
