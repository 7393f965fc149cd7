package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/homegenie/homegenie-mcp/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Client identity sent during the MCP handshake.
const (
	clientName    = "homegenie-mcp"
	clientVersion = "1.0.0"
)

// Client talks to a running HomeGenie MCP server. It backs the CLI's call
// and tools subcommands, which reach either a spawned stdio server or an
// HTTP deployment.
type Client struct {
	session *mcp.ClientSession
}

// New spawns command as a stdio MCP server and connects to it. The SDK owns
// the subprocess lifecycle: closing the session closes stdin, waits, and
// escalates through SIGTERM/SIGKILL if needed.
func New(ctx context.Context, command string, args ...string) (*Client, error) {
	cmd := exec.Command(command, args...) //nolint:gosec // command is caller-provided by design
	return connect(ctx, &mcp.CommandTransport{Command: cmd})
}

// NewHTTP connects to a streamable-HTTP MCP server at url.
func NewHTTP(ctx context.Context, url string) (*Client, error) {
	return connect(ctx, &mcp.StreamableClientTransport{Endpoint: url})
}

// connect performs the MCP handshake over the given transport. Tests drive
// it directly with in-memory transports.
func connect(ctx context.Context, transport mcp.Transport) (*Client, error) {
	c := mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)

	session, err := c.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: connect: %w", err)
	}

	return &Client{session: session}, nil
}

// ListTools fetches the server's tools. Each returned Tool has a Handler
// that calls back through this client, so a listed tool can be invoked
// directly.
func (c *Client) ListTools(ctx context.Context) ([]toolbox.Tool, error) {
	listed, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: list tools: %w", err)
	}

	tools := make([]toolbox.Tool, 0, len(listed.Tools))
	for _, lt := range listed.Tools {
		t, err := c.toolFromSDK(lt)
		if err != nil {
			return nil, fmt.Errorf("mcpclient: convert tool %q: %w", lt.Name, err)
		}
		tools = append(tools, t)
	}

	return tools, nil
}

// CallTool invokes a named tool with raw JSON arguments and returns the text
// of the result. Empty arguments are sent as an empty object. A tool-level
// failure (IsError result) comes back as an error carrying the server's
// message.
func (c *Client) CallTool(ctx context.Context, name string, arguments json.RawMessage) (string, error) {
	args := map[string]any{}
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return "", fmt.Errorf("mcpclient: unmarshal arguments: %w", err)
		}
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", fmt.Errorf("mcpclient: call tool: %w", err)
	}

	text := joinText(result)
	if result.IsError {
		return "", fmt.Errorf("mcpclient: tool error: %s", text)
	}

	return text, nil
}

// Close terminates the session and releases its transport.
func (c *Client) Close() error {
	return c.session.Close()
}

// toolFromSDK converts a listed SDK tool into a toolbox.Tool whose handler
// round-trips through CallTool.
func (c *Client) toolFromSDK(t *mcp.Tool) (toolbox.Tool, error) {
	schema, err := json.Marshal(t.InputSchema)
	if err != nil {
		return toolbox.Tool{}, fmt.Errorf("marshal input schema: %w", err)
	}

	name := t.Name

	return toolbox.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: schema,
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			return c.CallTool(ctx, name, input)
		},
	}, nil
}

// joinText concatenates the text content items of a result, one per line.
func joinText(result *mcp.CallToolResult) string {
	parts := make([]string, 0, len(result.Content))
	for _, item := range result.Content {
		if tc, ok := item.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
