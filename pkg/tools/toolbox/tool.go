package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON arguments and returns a text
// result. Handlers default malformed or missing fields rather than reject
// them.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool is a named operation exposed to MCP clients, with a JSON Schema
// describing its input.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// Call identifies a single tool invocation.
type Call struct {
	ID        string
	Name      string
	Arguments string
}

// Result is the outcome of a Call. IsError marks lookup or handler failures;
// Content then carries the error text.
type Result struct {
	CallID  string
	Content string
	IsError bool
}
