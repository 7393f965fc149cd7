package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/homegenie/homegenie-mcp/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes a toolbox over MCP using the official Go SDK. One Server
// value backs both deployment shapes: Serve runs the stdio transport, and
// Handler mounts the same tools behind streamable HTTP.
type Server struct {
	server *mcp.Server
}

// New creates a Server with the given identity and registers every tool in
// tb. A nil toolbox yields a server with no tools.
func New(name, version string, tb *toolbox.ToolBox) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
	}
	if tb != nil {
		s.Register(tb.Tools()...)
	}
	return s
}

// Register adds tools to the server.
func (s *Server) Register(tools ...toolbox.Tool) {
	for _, t := range tools {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, wrapHandler(t.Handler))
	}
}

// Serve reads MCP requests from in and writes responses to out, blocking
// until ctx is cancelled or the transport closes. in and out are normally
// the process's stdin and stdout; anything the server logs must go elsewhere.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.run(ctx, &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	})
}

// Handler returns an http.Handler speaking the streamable HTTP flavor of
// MCP, for mounting on a mux alongside plain HTTP endpoints.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// run starts the server on the given transport. Reached via Serve in
// production; tests drive it directly with in-memory transports.
func (s *Server) run(ctx context.Context, t mcp.Transport) error {
	return s.server.Run(ctx, t)
}

// wrapHandler adapts a toolbox.Handler to the SDK's handler signature.
// Absent arguments decode as an empty object, and handler errors surface as
// in-band error results rather than protocol failures, so a failing tool
// never tears down the session.
func wrapHandler(h toolbox.Handler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}

		text, err := h(ctx, args)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil
	}
}

// nopWriteCloser gives an io.Writer a no-op Close, as IOTransport wants
// closers for both ends.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
