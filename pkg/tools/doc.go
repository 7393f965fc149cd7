// Package tools holds the MCP (Model Context Protocol) plumbing shared by
// the server and the CLI.
//
// The toolbox sub-package defines the Tool type and the explicit registry
// the rest of the system hangs tools on. mcpserver exposes a registry over
// MCP (stdio for spawned deployments, streamable HTTP for container ones)
// and mcpclient is the matching client used by the call and tools
// subcommands. Both transport packages are thin wrappers around the official
// SDK (github.com/modelcontextprotocol/go-sdk); they depend on toolbox but
// not on each other.
package tools
