package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/homegenie/homegenie-mcp/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoTool answers with the raw arguments it was given.
func echoTool(name string) toolbox.Tool {
	return toolbox.Tool{
		Name:        name,
		Description: "Echoes arguments for " + name,
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, input json.RawMessage) (string, error) {
			return string(input), nil
		},
	}
}

func failingTool(name, msg string) toolbox.Tool {
	return toolbox.Tool{
		Name:        name,
		Description: "Always fails",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, _ json.RawMessage) (string, error) {
			return "", errors.New(msg)
		},
	}
}

func toolboxWith(tools ...toolbox.Tool) *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(tools...)
	return tb
}

// connect starts srv on an in-memory transport and returns a connected SDK
// client session. Server shutdown is tied to t.Cleanup.
func connect(t *testing.T, srv *Server) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.run(ctx, serverTransport) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "mcpserver-test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func TestNew_NilToolbox(t *testing.T) {
	session := connect(t, New("homegenie", "1.0.0", nil))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Tools)
}

func TestListTools_NamesAndDescriptions(t *testing.T) {
	s := New("homegenie", "1.0.0", toolboxWith(
		echoTool("get_weather_data"),
		echoTool("get_energy_prices"),
		echoTool("health_check"),
	))

	session := connect(t, s)

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s", tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_weather_data", "get_energy_prices", "health_check"}, names)
}

func TestCallTool_EchoesArguments(t *testing.T) {
	session := connect(t, New("homegenie", "1.0.0", toolboxWith(echoTool("get_weather_data"))))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_weather_data",
		Arguments: map[string]any{"location": "Berlin"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"location":"Berlin"}`, text.Text)
}

func TestCallTool_AbsentArgumentsBecomeEmptyObject(t *testing.T) {
	session := connect(t, New("homegenie", "1.0.0", toolboxWith(echoTool("health_check"))))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "health_check"})
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{}`, text.Text)
}

func TestCallTool_HandlerErrorIsInBand(t *testing.T) {
	s := New("homegenie", "1.0.0", toolboxWith(
		failingTool("get_energy_prices", "market data unavailable"),
	))
	session := connect(t, s)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_energy_prices",
		Arguments: map[string]any{},
	})
	require.NoError(t, err, "handler errors must not become protocol errors")
	assert.True(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "market data unavailable", text.Text)
}

func TestCallTool_UnknownTool(t *testing.T) {
	session := connect(t, New("homegenie", "1.0.0", nil))

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_stock_prices",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get_stock_prices")
}

// TestServe_OverPipes exercises the stdio path end to end: the server reads
// one pipe pair and the client speaks through the other, exactly as a
// spawning host would over stdin/stdout.
func TestServe_OverPipes(t *testing.T) {
	s := New("homegenie", "1.0.0", toolboxWith(echoTool("get_weather_data")))

	clientReads, serverWrites := io.Pipe()
	serverReads, clientWrites := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, serverReads, serverWrites) }()
	t.Cleanup(func() {
		cancel()
		_ = serverReads.Close()
		_ = clientReads.Close()
		<-done
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "mcpserver-test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.IOTransport{Reader: clientReads, Writer: clientWrites}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "get_weather_data", result.Tools[0].Name)
}

func TestHandler_ServesStreamableHTTP(t *testing.T) {
	s := New("homegenie", "1.0.0", toolboxWith(echoTool("get_energy_prices")))

	httpServer := httptest.NewServer(s.Handler())
	t.Cleanup(httpServer.Close)

	client := mcp.NewClient(&mcp.Implementation{Name: "mcpserver-test", Version: "0.0.1"}, nil)
	session, err := client.Connect(context.Background(), &mcp.StreamableClientTransport{Endpoint: httpServer.URL}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "get_energy_prices", result.Tools[0].Name)
}

func TestRun_CancelledContext(t *testing.T) {
	s := New("homegenie", "1.0.0", nil)
	serverTransport, _ := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.run(ctx, serverTransport), context.Canceled)
}
