package plugin

import (
	"context"
	"net/rpc"

	hashiplug "github.com/hashicorp/go-plugin"

	openapiglue "github.com/erraggy/openapi-glue"
)

// ProtocolVersion is bumped whenever the RPC contract changes incompatibly.
const ProtocolVersion = 1

// HandshakeConfig is shared by the host and local plugins. A plugin built
// against a different ProtocolVersion is refused at startup.
var HandshakeConfig = hashiplug.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   "OPENAPI_GLUE_PLUGIN",
	MagicCookieValue: "openapi-glue-generator",
}

// pluginKey is the name the generator is dispensed under.
const pluginKey = "generator"

// PluginMap returns the plugin set served by a local plugin.
func PluginMap(impl Generator) map[string]hashiplug.Plugin {
	return map[string]hashiplug.Plugin{
		pluginKey: &RPCPlugin{Impl: impl},
	}
}

// Serve runs impl as a local plugin. It blocks until the host disconnects
// and must be called from the plugin's main.
func Serve(impl Generator) {
	hashiplug.Serve(&hashiplug.ServeConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         PluginMap(impl),
	})
}

// RPCPlugin adapts a Generator to go-plugin's net/rpc transport.
type RPCPlugin struct {
	// Impl is only set on the plugin side.
	Impl Generator
}

// Server returns the RPC receiver registered as "Plugin".
func (p *RPCPlugin) Server(*hashiplug.MuxBroker) (any, error) {
	return &RPCServer{Impl: p.Impl}, nil
}

// Client returns a Generator that forwards calls to the plugin process.
func (p *RPCPlugin) Client(_ *hashiplug.MuxBroker, c *rpc.Client) (any, error) {
	return &rpcClient{client: c}, nil
}

// DescribeArgs is sent with Plugin.Describe.
type DescribeArgs struct {
	// HostVersion is the openapi-glue version of the caller.
	HostVersion string
}

// RPCServer is the net/rpc receiver on the plugin side.
type RPCServer struct {
	Impl Generator
}

// Describe serves Plugin.Describe.
func (s *RPCServer) Describe(_ DescribeArgs, resp *Descriptor) error {
	d, err := s.Impl.Describe(context.Background())
	if err != nil {
		return err
	}
	*resp = *d
	return nil
}

// Generate serves Plugin.Generate.
func (s *RPCServer) Generate(req GenerateRequest, resp *GenerateResponse) error {
	out, err := s.Impl.Generate(context.Background(), &req)
	if err != nil {
		return err
	}
	*resp = *out
	return nil
}

type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) Describe(ctx context.Context) (*Descriptor, error) {
	var resp Descriptor
	if err := c.call(ctx, "Plugin.Describe", DescribeArgs{HostVersion: openapiglue.Version()}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *rpcClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.call(ctx, "Plugin.Generate", *req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// call issues an RPC that is abandoned when ctx is done. The plugin
// process is killed on Close, which also ends the pending call.
func (c *rpcClient) call(ctx context.Context, method string, args, reply any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pending := c.client.Go(method, args, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case done := <-pending.Done:
		return done.Error
	}
}

var (
	_ hashiplug.Plugin = (*RPCPlugin)(nil)
	_ Generator        = (*rpcClient)(nil)
)
