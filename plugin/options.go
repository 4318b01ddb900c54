package plugin

import (
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"

	"github.com/erraggy/openapi-glue/internal/logging"
)

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	logger        logging.Logger
	hclogger      hclog.Logger
	clientFactory ClientFactory
	command       func(path string) *exec.Cmd
}

func newLoaderConfig(opts []LoaderOption) *loaderConfig {
	cfg := &loaderConfig{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.hclogger == nil {
		cfg.hclogger = hclog.New(&hclog.LoggerOptions{
			Name:   "plugin",
			Output: os.Stderr,
			Level:  hclog.Error,
		})
	}
	if cfg.clientFactory == nil {
		cfg.clientFactory = &DefaultClientFactory{Logger: cfg.hclogger, Command: cfg.command}
	}
	return cfg
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l logging.Logger) LoaderOption {
	return func(c *loaderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPluginLogLevel sets the level of the go-plugin client logger, which
// also relays the subprocess's stderr.
func WithPluginLogLevel(level hclog.Level) LoaderOption {
	return func(c *loaderConfig) {
		c.hclogger = hclog.New(&hclog.LoggerOptions{
			Name:   "plugin",
			Output: os.Stderr,
			Level:  level,
		})
	}
}

// WithClientFactory replaces how local plugin clients are created (for testing).
func WithClientFactory(f ClientFactory) LoaderOption {
	return func(c *loaderConfig) {
		c.clientFactory = f
	}
}

// WithCommand overrides how the local plugin process is started. The
// default runs the executable with no arguments.
func WithCommand(build func(path string) *exec.Cmd) LoaderOption {
	return func(c *loaderConfig) {
		c.command = build
	}
}
