package config

import (
	"github.com/spf13/pflag"

	"github.com/erraggy/openapi-glue/internal/logging"
	"github.com/erraggy/openapi-glue/params"
	"github.com/erraggy/openapi-glue/plugin"
)

// RegisterFlags defines the generation flags on fs. Flag names match the
// config file keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("projectName", "p", "", "The name of the project to generate\n[default: generated-<type>-project]")
	fs.StringP("baseDir", "b", "", "Directory to generate the project in.\nThis directory must already exist.\n[default: \".\"]")
	fs.StringP("type", "t", string(params.DefaultType()), "Type of project to generate, possible options:\njavascript (default)\nstandaloneJS")
	fs.BoolP("checksumOnly", "c", false, "Don't generate the project on disk but\nreturn checksums only.")
	fs.StringP("localPlugin", "l", "", "Use a local path to the plugin.")
	fs.Lookup("localPlugin").NoOptDefVal = plugin.DefaultLocalPath
	fs.StringP("format", "f", params.FormatJSON, "Checksum output format: json, yaml, or txtar")
	fs.String("overlay", "", "OpenAPI Overlay file applied to the specification")
	fs.String(FlagConfig, "", "Config file [default: "+DefaultFile+" if present]")
	fs.BoolP("verbose", "v", false, "Log diagnostics to stderr")
	fs.String("log-format", logging.FormatText, "Diagnostic log format: text or json")
}
