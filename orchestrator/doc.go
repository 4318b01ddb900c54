// Package orchestrator drives one generation run: it owns the loaded
// specification and the plugin loader, asks the plugin for the project
// files, and hands every file to a Sink.
//
// Materialize mode writes the files under baseDir/projectName, overwriting
// whatever is there. Checksum-only mode writes nothing and records a
// manifest of sha256 digests (or raw contents) instead. Both modes request
// the same file set from the plugin and differ only in the sink, so a
// checksum manifest is a faithful stand-in for what would be written.
//
// # Usage
//
//	g := orchestrator.New(plugin.Resolve("", cwd).Loader(generator.Published()),
//	    orchestrator.WithChecksumOnly(true))
//	if err := g.Parse(ctx, "petstore.yaml"); err != nil {
//	    return err
//	}
//	result, err := g.GenerateProject(ctx, cwd, "petstore", params.TypeJavaScript)
//
// [Run] performs the whole pipeline for a resolved params.Invocation.
package orchestrator
