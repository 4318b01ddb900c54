// Package openapiglue generates fastify-openapi-glue projects from OpenAPI
// specifications.
//
// The work is split into a pipeline of small packages, leaf first:
//
//   - params: resolves command-line options into an invocation
//   - specloader: reads, converts, and validates the OpenAPI document
//   - plugin: selects and loads the generation plugin (published or local)
//   - orchestrator: drives the plugin and writes or checksums its output
//   - output: renders the result for the terminal
//
// The generator package holds the published generation strategy for the
// "javascript" and "standaloneJS" project types. It runs in-process when
// the published plugin is selected, and behind a go-plugin RPC boundary
// when it is served by cmd/openapi-glue-plugin.
//
// # Quick Start
//
//	inv, err := params.Resolve(params.Options{ChecksumOnly: true}, []string{"petstore.yaml"}, cwd)
//	if err != nil {
//	    return err
//	}
//	result, err := orchestrator.Run(ctx, inv)
//	if err != nil {
//	    return err
//	}
//	text, err := output.Format(result, inv.OutputFormat)
//
// # Checksum-only mode
//
// In checksum-only mode nothing is written to disk. The result carries a
// manifest mapping every generated relative path to the sha256 digest of its
// content. Manifests are deterministic for a given specification, project
// type, and project name, so they can be diffed across generator versions.
//
// # Local plugins
//
// A local plugin is any executable that serves a plugin.Generator with
// plugin.Serve. Selecting one with -l changes the provenance of the
// generated files, so the CLI announces it on stderr before generating.
package openapiglue
