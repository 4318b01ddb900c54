// Package oaserrors provides structured error types for openapi-glue.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between the stage of the
// generation pipeline that failed.
//
// # Error Categories
//
//   - UsageError: missing or invalid command-line input
//   - SpecificationError: unreadable or invalid OpenAPI document
//   - PluginLoadError: published or local plugin could not be resolved or started
//   - GenerationError: the plugin rejected the project type or failed producing content
//   - WriteError: the target directory is missing or not writable
//
// # Usage with errors.Is
//
//	err := g.Parse(ctx, "petstore.yaml")
//	if errors.Is(err, oaserrors.ErrSpecification) {
//	    // The document could not be loaded
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUsage indicates bad or missing command-line input.
	ErrUsage = errors.New("usage error")

	// ErrSpecification indicates the OpenAPI document could not be loaded.
	ErrSpecification = errors.New("specification error")

	// ErrPluginLoad indicates the generation plugin could not be loaded.
	ErrPluginLoad = errors.New("plugin load error")

	// ErrGeneration indicates the plugin failed to produce the project.
	ErrGeneration = errors.New("generation error")

	// ErrWrite indicates the project could not be written to disk.
	ErrWrite = errors.New("write error")

	// ErrNotParsed is returned when a project is generated before a
	// specification was successfully parsed.
	ErrNotParsed = errors.New("no specification parsed: call Parse before GenerateProject")
)

// UsageError represents invalid command-line input.
// The message is shown verbatim, followed by usage guidance.
type UsageError struct {
	// Option is the name of the offending option, if any
	Option string
	// Value is the rejected value (may be nil)
	Value any
	// Message describes the problem
	Message string
}

// Error returns the message without a category prefix so it reads well
// directly above the usage text.
func (e *UsageError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	msg := "invalid usage"
	if e.Option != "" {
		msg += " of " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// SpecificationError represents a failure to read, parse, or validate the
// OpenAPI document.
type SpecificationError struct {
	// Path is the absolute path of the document
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying parser or I/O error
	Cause error
}

// Error returns a human-readable error message.
func (e *SpecificationError) Error() string {
	msg := "specification error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SpecificationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SpecificationError) Is(target error) bool {
	return target == ErrSpecification
}

// PluginLoadError represents a plugin that could not be located or initialized.
type PluginLoadError struct {
	// Source is "published" or "local"
	Source string
	// Location is the plugin name@version or the local executable path
	Location string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PluginLoadError) Error() string {
	msg := "plugin load error"
	if e.Source != "" {
		msg += " (" + e.Source
		if e.Location != "" {
			msg += " " + e.Location
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PluginLoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PluginLoadError) Is(target error) bool {
	return target == ErrPluginLoad
}

// GenerationError represents a plugin that rejected the project type or
// failed while producing file contents.
type GenerationError struct {
	// ProjectType is the requested project type
	ProjectType string
	// File is the offending generated path, if the failure concerns one file
	File string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerationError) Error() string {
	msg := "generation error"
	if e.ProjectType != "" {
		msg += " for type " + e.ProjectType
	}
	if e.File != "" {
		msg += " at " + e.File
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// WriteError represents a failure to materialize the project on disk.
type WriteError struct {
	// Path is the directory or file that could not be written
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying I/O error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *WriteError) Error() string {
	msg := "write error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}
