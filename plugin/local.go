package plugin

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	hashiplug "github.com/hashicorp/go-plugin"
	"github.com/samber/oops"

	"github.com/erraggy/openapi-glue/oaserrors"
)

// PluginClient wraps the go-plugin client for testability.
type PluginClient interface {
	// Client starts the plugin process and returns its protocol client.
	Client() (hashiplug.ClientProtocol, error)
	// Kill terminates the plugin process.
	Kill()
}

// ClientFactory creates plugin clients.
type ClientFactory interface {
	// NewClient creates a client for the executable at path.
	NewClient(path string) PluginClient
}

// DefaultClientFactory creates real go-plugin clients speaking net/rpc.
type DefaultClientFactory struct {
	Logger hclog.Logger
	// Command builds the process to start; nil runs path with no arguments.
	Command func(path string) *exec.Cmd
}

// NewClient creates a go-plugin client for path.
func (f *DefaultClientFactory) NewClient(path string) PluginClient {
	cmd := exec.Command(path) // #nosec G204 -- path is the user's explicit local plugin override
	if f.Command != nil {
		cmd = f.Command(path)
	}
	return hashiplug.NewClient(&hashiplug.ClientConfig{
		HandshakeConfig:  HandshakeConfig,
		Plugins:          PluginMap(nil),
		Cmd:              cmd,
		AllowedProtocols: []hashiplug.Protocol{hashiplug.ProtocolNetRPC},
		Logger:           f.Logger,
	})
}

type localLoader struct {
	sel Selection
	cfg *loaderConfig
}

func (l *localLoader) Selection() Selection { return l.sel }

// Load starts the plugin executable, completes the handshake, and asks the
// plugin to describe itself. The process is killed on any failure.
func (l *localLoader) Load(ctx context.Context) (Instance, error) {
	path := l.sel.Path()
	errb := oops.Code("PLUGIN_LOAD").In("plugin").With("source", "local").With("path", path)

	info, err := os.Stat(path)
	if err != nil {
		msg := "cannot access plugin executable"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "plugin executable not found"
		}
		return nil, l.fail(msg, errb.Wrap(err))
	}
	if info.IsDir() {
		return nil, l.fail("plugin path is a directory", nil)
	}

	l.cfg.logger.Debug("starting local plugin", "path", path)
	client := l.cfg.clientFactory.NewClient(path)

	protocol, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, l.fail("failed to start plugin", errb.Wrap(err))
	}

	raw, err := protocol.Dispense(pluginKey)
	if err != nil {
		client.Kill()
		return nil, l.fail("failed to dispense plugin", errb.Wrap(err))
	}

	gen, ok := raw.(Generator)
	if !ok {
		client.Kill()
		return nil, l.fail("plugin does not implement the generator contract", nil)
	}

	desc, err := gen.Describe(ctx)
	if err != nil {
		client.Kill()
		return nil, l.fail("failed to describe plugin", errb.Wrap(err))
	}

	l.cfg.logger.Info("loaded local plugin", "path", path, "name", desc.Name, "version", desc.Version)
	return &localInstance{Generator: gen, client: client, desc: desc}, nil
}

func (l *localLoader) fail(msg string, cause error) error {
	return &oaserrors.PluginLoadError{
		Source:   Local.String(),
		Location: l.sel.Path(),
		Message:  msg,
		Cause:    cause,
	}
}

type localInstance struct {
	Generator
	client PluginClient
	desc   *Descriptor
}

func (i *localInstance) Descriptor() *Descriptor { return i.desc }

// Close kills the plugin process.
func (i *localInstance) Close() error {
	i.client.Kill()
	return nil
}
