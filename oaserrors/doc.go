// Package oaserrors provides structured error types for openapi-glue.
//
// Import path: github.com/erraggy/openapi-glue/oaserrors
//
// Every stage of the generation pipeline reports failures with exactly one of
// these types, so callers can tell which stage failed via [errors.Is] and
// [errors.As]. All of them are terminal for an invocation.
//
// # Error Types
//
//   - [UsageError]: missing specification path, unsupported project type, bad flags
//   - [SpecificationError]: the document is missing, unreadable, or invalid
//   - [PluginLoadError]: the published or local plugin cannot be started
//   - [GenerationError]: the plugin rejects the type or fails to produce files
//   - [WriteError]: the base directory is missing or a file cannot be written
//
// # Sentinel Errors
//
//   - [ErrUsage]: Matches any [UsageError]
//   - [ErrSpecification]: Matches any [SpecificationError]
//   - [ErrPluginLoad]: Matches any [PluginLoadError]
//   - [ErrGeneration]: Matches any [GenerationError]
//   - [ErrWrite]: Matches any [WriteError]
//   - [ErrNotParsed]: GenerateProject was called before a successful Parse
//
// # Usage Examples
//
//	var loadErr *oaserrors.PluginLoadError
//	if errors.As(err, &loadErr) {
//	    fmt.Printf("plugin %s could not be loaded\n", loadErr.Location)
//	}
//
// # Error Chaining
//
// All types except [UsageError] carry a Cause, so root causes stay reachable:
//
//	var writeErr *oaserrors.WriteError
//	if errors.As(err, &writeErr) && errors.Is(writeErr.Cause, fs.ErrPermission) {
//	    // The target directory is read-only
//	}
package oaserrors
