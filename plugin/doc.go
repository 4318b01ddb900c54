// Package plugin defines the generation plugin contract and resolves which
// plugin an invocation uses.
//
// A plugin turns a validated specification into a set of relative path and
// content pairs for one project type. Two sources satisfy the same contract:
//
//   - Published: a version-pinned entry from a [Catalog], run in-process
//   - Local: an executable at a caller-supplied path, run as a
//     hashicorp/go-plugin subprocess speaking net/rpc
//
// [Resolve] turns the --localPlugin option into an immutable [Selection],
// and [Selection.Loader] turns that into the opaque [Loader] capability the
// orchestrator consumes. There is no package-level plugin state.
//
// # Writing a local plugin
//
//	func main() {
//	    plugin.Serve(myGenerator{})
//	}
package plugin
