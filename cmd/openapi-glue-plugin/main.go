// Command openapi-glue-plugin serves the built-in generator as a local
// plugin. Build it next to a project and select it with
// "openapi-glue -l" to try generator changes before they are published.
//
// The process is started by the openapi-glue host and speaks the go-plugin
// protocol on stdout. Run by hand, it prints a notice and exits.
package main

import (
	"os"

	"github.com/erraggy/openapi-glue/generator"
	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/plugin"
)

// debugEnv enables debug logging; go-plugin relays it to the host.
const debugEnv = "OPENAPI_GLUE_PLUGIN_DEBUG"

func main() {
	logger := logging.Setup(logging.FormatJSON, os.Getenv(debugEnv) != "", os.Stderr)
	plugin.Serve(generator.New(generator.WithLogger(logger)))
}
