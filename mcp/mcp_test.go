package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textArgs struct {
	Text string `json:"text"`
}

type addArgs struct {
	A int `json:"a"`
	B int `json:"b"`
}

func sourceRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r := tool.NewRegistry()
	tool.MustBindTo(r, "echo", "Echo text", func(ctx context.Context, args textArgs) (string, error) {
		return args.Text, nil
	})
	tool.MustBindTo(r, "add", "Add numbers", func(ctx context.Context, args addArgs) (string, error) {
		data, err := json.Marshal(args.A + args.B)
		return string(data), err
	})
	tool.MustBindTo(r, "fail", "Always fails", func(ctx context.Context, args struct{}) (string, error) {
		return "", errors.New("quota exceeded")
	})
	tool.MustBindTo(r, "boom", "Panics", func(ctx context.Context, args struct{}) (string, error) {
		panic("bad state")
	})
	return r
}

func initializedClient(t *testing.T, r *tool.Registry) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(NewServer(r, WithName("test-server"), WithVersion("1.0.0")))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "test-client", Version: "1.0.0"},
		},
	})
	require.NoError(t, err)
	return c
}

func remoteRegistry(t *testing.T, r *tool.Registry) *RemoteRegistry {
	t.Helper()
	c, err := client.NewInProcessClient(NewServer(r))
	require.NoError(t, err)

	remote, err := NewRemoteRegistryFromClient(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = remote.Close() })
	return remote
}

func TestConversions(t *testing.T) {
	t.Run("tool round trip", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)
		in := ai.Tool{Name: "greet", Description: "Greet someone", Parameters: schema}

		out := FromMCPTool(ToMCPTool(in))
		assert.Equal(t, in.Name, out.Name)
		assert.Equal(t, in.Description, out.Description)
		assert.JSONEq(t, string(schema), string(out.Parameters))
	})

	t.Run("nil parameters become an empty object schema", func(t *testing.T) {
		m := ToMCPTool(ai.Tool{Name: "simple"})
		assert.JSONEq(t, string(emptyObjectSchema), string(m.RawInputSchema))
	})

	t.Run("call request arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.ToolCall{Name: "add", Arguments: `{"a":1,"b":2}`})
		assert.Equal(t, "add", req.Params.Name)
		assert.Equal(t, map[string]any{"a": 1.0, "b": 2.0}, req.Params.Arguments)

		req = ToMCPCallToolRequest(ai.ToolCall{Name: "add", Arguments: `not json`})
		assert.Equal(t, map[string]any{}, req.Params.Arguments)
	})

	t.Run("error results are prefixed once", func(t *testing.T) {
		res := FromMCPCallToolResult("c1", mcp.NewToolResultError("boom"))
		assert.Equal(t, ai.ToolResult{ToolCallID: "c1", Content: "Error: boom", IsError: true}, res)

		res = FromMCPCallToolResult("c1", mcp.NewToolResultError("Error: boom"))
		assert.Equal(t, "Error: boom", res.Content)

		res = FromMCPCallToolResult("c2", nil)
		assert.True(t, res.IsError)
		assert.Equal(t, "c2", res.ToolCallID)
	})

	t.Run("to MCP result", func(t *testing.T) {
		assert.False(t, ToMCPCallToolResult(ai.ToolResult{Content: "ok"}).IsError)
		assert.True(t, ToMCPCallToolResult(ai.ToolResult{Content: "Error: x", IsError: true}).IsError)
	})
}

func TestServer(t *testing.T) {
	c := initializedClient(t, sourceRegistry(t))
	ctx := context.Background()

	t.Run("lists registry tools", func(t *testing.T) {
		result, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)

		names := make([]string, len(result.Tools))
		for i, tl := range result.Tools {
			names[i] = tl.Name
		}
		assert.ElementsMatch(t, []string{"echo", "add", "fail", "boom"}, names)
	})

	call := func(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
		t.Helper()
		result, err := c.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: name, Arguments: args},
		})
		require.NoError(t, err)
		return result
	}

	t.Run("calls tools", func(t *testing.T) {
		result := call(t, "add", map[string]any{"a": 10, "b": 5})
		assert.False(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Equal(t, "15", text.Text)
	})

	t.Run("handler errors are error results", func(t *testing.T) {
		result := call(t, "fail", map[string]any{})
		assert.True(t, result.IsError)
		assert.Equal(t, "Error: quota exceeded", resultText(result))
	})

	t.Run("panics are error results", func(t *testing.T) {
		result := call(t, "boom", nil)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(result), "panic: bad state")
	})
}

func TestRemoteRegistry(t *testing.T) {
	remote := remoteRegistry(t, sourceRegistry(t))
	ctx := context.Background()

	t.Run("fetches tools", func(t *testing.T) {
		assert.Equal(t, 4, remote.Len())
		tools := remote.Tools()
		require.Len(t, tools, 4)
		descriptions := make(map[string]string, len(tools))
		for _, tl := range tools {
			descriptions[tl.Name] = tl.Description
		}
		assert.Equal(t, "Echo text", descriptions["echo"])
	})

	t.Run("executes remote tools", func(t *testing.T) {
		result, err := remote.Execute(ctx, ai.ToolCall{ID: "call_123", Name: "add", Arguments: `{"a": 10, "b": 5}`})
		require.NoError(t, err)
		assert.Equal(t, ai.ToolResult{ToolCallID: "call_123", Content: "15"}, result)

		result, err = remote.Execute(ctx, ai.ToolCall{ID: "call_124", Name: "fail", Arguments: `{}`})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "Error: quota exceeded", result.Content)
	})

	t.Run("refresh keeps tools", func(t *testing.T) {
		require.NoError(t, remote.Refresh(ctx))
		assert.Equal(t, 4, remote.Len())
	})
}

func TestRegisterInto(t *testing.T) {
	remote := remoteRegistry(t, sourceRegistry(t))
	ctx := context.Background()

	local := tool.NewRegistry()
	require.NoError(t, remote.RegisterInto(local))
	assert.Equal(t, 4, local.Len())

	res, err := local.Execute(ctx, ai.ToolCall{ID: "c1", Name: "echo", Arguments: `{"text":"hi"}`})
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Content)

	res, err = local.Execute(ctx, ai.ToolCall{ID: "c2", Name: "fail", Arguments: `{}`})
	require.Error(t, err)
	assert.Equal(t, "Error: quota exceeded", res.Content)

	t.Run("name clash", func(t *testing.T) {
		clash := tool.NewRegistry()
		tool.MustBindTo(clash, "add", "local add", func(ctx context.Context, args addArgs) (string, error) {
			return "", nil
		})
		err := remote.RegisterInto(clash)
		var dup *tool.ErrToolAlreadyRegistered
		assert.ErrorAs(t, err, &dup)
	})
}

func TestDial(t *testing.T) {
	_, err := Dial(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTarget)
}
