package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/tool"
)

// ErrEmptyTarget is returned by Dial when no server is named.
var ErrEmptyTarget = errors.New("mcp: empty server target")

// RemoteRegistry provides access to tools from an MCP server.
//
// RemoteRegistry is safe for concurrent use. The tool list is fetched on
// connect and cached; Refresh fetches it again.
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]ai.Tool
	order  []string
}

// Dial connects to an MCP server. A target starting with http:// or https://
// is reached over SSE; anything else is a command line started as a stdio
// subprocess.
func Dial(ctx context.Context, target string, env ...string) (*RemoteRegistry, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return NewRemoteRegistrySSE(ctx, target)
	}
	fields := strings.Fields(target)
	return NewRemoteRegistry(ctx, fields[0], env, fields[1:]...)
}

// NewRemoteRegistry creates a RemoteRegistry connected to an MCP server via stdio.
// The command is the path to the MCP server executable, and args are passed to it.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return NewRemoteRegistryFromClient(ctx, c)
}

// NewRemoteRegistrySSE creates a RemoteRegistry connected to an MCP server via SSE.
func NewRemoteRegistrySSE(ctx context.Context, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}
	return NewRemoteRegistryFromClient(ctx, c)
}

// NewRemoteRegistryFromClient starts and initializes c, then fetches its tools.
func NewRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "scout",
				Version: "dev",
			},
		},
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{client: c}
	if err := r.Refresh(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh fetches the current list of tools from the MCP server.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	tools := make(map[string]ai.Tool, len(result.Tools))
	order := make([]string, 0, len(result.Tools))
	for _, t := range result.Tools {
		if _, dup := tools[t.Name]; !dup {
			order = append(order, t.Name)
		}
		tools[t.Name] = FromMCPTool(t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = tools
	r.order = order
	return nil
}

// Tools returns the server's tools in the order the server listed them.
func (r *RemoteRegistry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Len returns the number of available tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute calls a tool on the remote MCP server. Transport failures are
// returned as errors; a tool that reports failure yields an error result.
func (r *RemoteRegistry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	result, err := r.client.CallTool(ctx, ToMCPCallToolRequest(call))
	if err != nil {
		return ai.NewToolErrorResult(call.ID, err), fmt.Errorf("mcp call %s: %w", call.Name, err)
	}
	return FromMCPCallToolResult(call.ID, result), nil
}

// Handler returns a tool.Handler that forwards calls for name to the server.
func (r *RemoteRegistry) Handler(name string) tool.Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		call.Name = name
		res, err := r.Execute(ctx, call)
		if err != nil {
			return "", err
		}
		if res.IsError {
			return "", errors.New(strings.TrimPrefix(res.Content, ai.ToolErrorPrefix))
		}
		return res.Content, nil
	}
}

// RegisterInto adds every remote tool to registry. On a name clash it stops
// with *tool.ErrToolAlreadyRegistered; tools added before the clash stay.
func (r *RemoteRegistry) RegisterInto(registry *tool.Registry) error {
	for _, t := range r.Tools() {
		if err := registry.Register(t, r.Handler(t.Name)); err != nil {
			return err
		}
	}
	return nil
}
