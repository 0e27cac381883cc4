package tool

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/spetersoncode/scout"
)

type registeredTool struct {
	tool    ai.Tool
	handler Handler
}

// Registry maps tool names to handlers. It is built before a run and only
// read by the agent loop. It is safe for concurrent use, so one registry
// can serve many concurrent runs.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]registeredTool),
	}
}

// Register adds a tool with its handler to the registry.
// Returns an error if a tool with the same name is already registered.
func (r *Registry) Register(tool ai.Tool, handler Handler) error {
	if tool.Name == "" {
		return fmt.Errorf("tool: empty name")
	}
	if handler == nil {
		return fmt.Errorf("tool: nil handler for %s", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}
	r.tools[tool.Name] = registeredTool{tool: tool, handler: handler}
	r.order = append(r.order, tool.Name)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tool ai.Tool, handler Handler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// RegisterAll registers all tool pairs, stopping at the first error.
func (r *Registry) RegisterAll(pairs ...ToolPair) error {
	for _, p := range pairs {
		if err := r.Register(p.Tool, p.Handler); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a handler by tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.handler, true
}

// Tools returns all registered tool definitions in registration order.
// This is the schema list bound to tool-bound model calls.
func (r *Registry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}
	return tools
}

// Names returns the names of all registered tools in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute runs the handler for a tool call.
//
// The returned ToolResult is always usable: it carries the call's id and
// either the handler output or an error description prefixed with
// ai.ToolErrorPrefix. The error is non-nil when the result is an error
// result: *ErrToolNotFound for unknown tools and *ErrToolExecution for a
// failing or panicking handler.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	handler, ok := r.Get(call.Name)
	if !ok {
		err := &ErrToolNotFound{Name: call.Name}
		return ai.NewToolErrorResult(call.ID, err), err
	}

	content, err := invoke(ctx, handler, call)
	if err != nil {
		return ai.NewToolErrorResult(call.ID, err), &ErrToolExecution{Name: call.Name, Err: err}
	}

	return ai.ToolResult{ToolCallID: call.ID, Content: content}, nil
}

func invoke(ctx context.Context, h Handler, call ai.ToolCall) (content string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()
	return h(ctx, call)
}
