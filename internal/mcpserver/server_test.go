package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	assert.Equal(t, "", sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file", sanitizeError(errors.New("open /home/user/api.yaml: no such file")))
	assert.Equal(t, "relative/api.yaml", sanitizeError(errors.New("relative/api.yaml")))
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OPENAPI_GLUE_MCP_ALLOW_WRITE", "false")
	t.Setenv("OPENAPI_GLUE_MCP_LOCAL_PLUGIN", "/opt/plugin")
	cfg := loadConfig()
	assert.False(t, cfg.AllowWrite)
	assert.Equal(t, "/opt/plugin", cfg.LocalPlugin)

	t.Setenv("OPENAPI_GLUE_MCP_ALLOW_WRITE", "maybe")
	assert.True(t, loadConfig().AllowWrite, "invalid values fall back to the default")
}

func listTools(t *testing.T, cfg *serverConfig) []string {
	t.Helper()
	server := NewServer(cfg)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer func() {
		_ = session.Close()
		cancel()
		<-done
	}()

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestNewServerTools(t *testing.T) {
	assert.ElementsMatch(t, []string{"checksum", "generate"}, listTools(t, &serverConfig{AllowWrite: true}))
	assert.Equal(t, []string{"checksum"}, listTools(t, &serverConfig{AllowWrite: false}))
}
