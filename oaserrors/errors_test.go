package oaserrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestUsageError(t *testing.T) {
	t.Run("Error message is shown verbatim", func(t *testing.T) {
		err := &UsageError{Option: "type", Value: "cobol", Message: "Unknown type: cobol"}
		if err.Error() != "Unknown type: cobol" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message without message", func(t *testing.T) {
		err := &UsageError{Option: "format", Value: "xml"}
		if err.Error() != "invalid usage of format (value: xml)" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &UsageError{}
		if err.Error() != "invalid usage" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrUsage only", func(t *testing.T) {
		err := &UsageError{}
		if !errors.Is(err, ErrUsage) {
			t.Error("UsageError should match ErrUsage")
		}
		if errors.Is(err, ErrSpecification) {
			t.Error("UsageError should not match ErrSpecification")
		}
	})
}

func TestSpecificationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("bad indentation")
		err := &SpecificationError{Path: "/tmp/api.yaml", Message: "parsing document", Cause: cause}
		expected := "specification error in /tmp/api.yaml: parsing document: bad indentation"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &SpecificationError{}
		if err.Error() != "specification error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap reaches fs.ErrNotExist", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", &SpecificationError{Cause: fmt.Errorf("open: %w", fs.ErrNotExist)})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Error("wrapped cause should be reachable")
		}
		if !errors.Is(err, ErrSpecification) {
			t.Error("SpecificationError should match ErrSpecification")
		}
	})
}

func TestPluginLoadError(t *testing.T) {
	t.Run("Error message for local plugin", func(t *testing.T) {
		err := &PluginLoadError{
			Source:   "local",
			Location: "/opt/plugin",
			Message:  "executable not found",
		}
		expected := "plugin load error (local /opt/plugin): executable not found"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with source only", func(t *testing.T) {
		err := &PluginLoadError{Source: "published", Cause: errors.New("no match")}
		expected := "plugin load error (published): no match"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("As extracts PluginLoadError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &PluginLoadError{Source: "local", Location: "./p"})
		var loadErr *PluginLoadError
		if !errors.As(err, &loadErr) {
			t.Fatal("errors.As should succeed")
		}
		if loadErr.Location != "./p" {
			t.Errorf("unexpected location: %s", loadErr.Location)
		}
		if !errors.Is(err, ErrPluginLoad) {
			t.Error("PluginLoadError should match ErrPluginLoad")
		}
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &GenerationError{
			ProjectType: "javascript",
			File:        "../escape.js",
			Message:     "path escapes project directory",
		}
		expected := "generation error for type javascript at ../escape.js: path escapes project directory"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("template failed")
		err := &GenerationError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is does not match other sentinels", func(t *testing.T) {
		err := &GenerationError{}
		if !errors.Is(err, ErrGeneration) {
			t.Error("GenerationError should match ErrGeneration")
		}
		if errors.Is(err, ErrWrite) {
			t.Error("GenerationError should not match ErrWrite")
		}
	})
}

func TestWriteError(t *testing.T) {
	t.Run("Error message with cause", func(t *testing.T) {
		err := &WriteError{Path: "/missing", Message: "base directory does not exist", Cause: fs.ErrNotExist}
		expected := "write error at /missing: base directory does not exist: file does not exist"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrWrite and cause", func(t *testing.T) {
		err := &WriteError{Cause: fs.ErrPermission}
		if !errors.Is(err, ErrWrite) {
			t.Error("WriteError should match ErrWrite")
		}
		if !errors.Is(err, fs.ErrPermission) {
			t.Error("WriteError should expose its cause")
		}
	})
}

func TestErrNotParsed(t *testing.T) {
	err := fmt.Errorf("orchestrator: %w", ErrNotParsed)
	if !errors.Is(err, ErrNotParsed) {
		t.Error("ErrNotParsed should survive wrapping")
	}
	if errors.Is(err, ErrGeneration) {
		t.Error("ErrNotParsed is a programming error, not a generation error")
	}
}
