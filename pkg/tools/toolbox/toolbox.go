package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// ToolBox is the explicit tool registry behind the MCP surface: tools are
// registered by name at startup and looked up per call. Registration is not
// synchronized; register everything before serving.
type ToolBox struct {
	tools map[string]Tool
}

// New returns an empty ToolBox.
func New() *ToolBox {
	return &ToolBox{tools: make(map[string]Tool)}
}

// Register adds tools, replacing any existing tool with the same name.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		tb.tools[t.Name] = t
	}
}

// Get looks up a tool by name.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (tb *ToolBox) Names() []string {
	return slices.Sorted(maps.Keys(tb.tools))
}

// Tools returns the registered tools sorted by name, for stable listings.
func (tb *ToolBox) Tools() []Tool {
	out := make([]Tool, 0, len(tb.tools))
	for _, name := range tb.Names() {
		out = append(out, tb.tools[name])
	}
	return out
}

// Call dispatches a single invocation. Unknown tools and handler errors are
// reported in-band through Result.IsError rather than as Go errors, matching
// how MCP reports tool failures.
func (tb *ToolBox) Call(ctx context.Context, c Call) Result {
	t, ok := tb.Get(c.Name)
	if !ok {
		return Result{CallID: c.ID, Content: fmt.Sprintf("tool not found: %s", c.Name), IsError: true}
	}

	content, err := t.Handler(ctx, json.RawMessage(c.Arguments))
	if err != nil {
		return Result{CallID: c.ID, Content: err.Error(), IsError: true}
	}

	return Result{CallID: c.ID, Content: content}
}
