package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ai "github.com/spetersoncode/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertMessages(t *testing.T) {
	contents, system := convertMessages([]ai.Message{
		ai.NewSystemMessage("instructions"),
		ai.NewUserMessage("question"),
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{
			{ID: "call_1", Name: "search", Arguments: `{"query":"a"}`},
			{ID: "call_2", Name: "clock", Arguments: ""},
		}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call_1", Content: "r1"}),
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call_2", Content: "Error: boom", IsError: true}),
		{Role: ai.RoleAssistant, Content: "done"},
	})

	require.NotNil(t, system)
	assert.Equal(t, "instructions", system.Parts[0].Text)

	require.Len(t, contents, 4)
	assert.Equal(t, "user", contents[0].Role)

	assert.Equal(t, "model", contents[1].Role)
	require.Len(t, contents[1].Parts, 2)
	assert.Equal(t, "search", contents[1].Parts[0].FunctionCall.Name)
	assert.Equal(t, map[string]any{"query": "a"}, contents[1].Parts[0].FunctionCall.Args)

	// results are labeled with the call's function name and grouped
	require.Len(t, contents[2].Parts, 2)
	first := contents[2].Parts[0].FunctionResponse
	assert.Equal(t, "search", first.Name)
	assert.Equal(t, "call_1", first.ID)
	assert.Equal(t, map[string]any{"output": "r1"}, first.Response)
	second := contents[2].Parts[1].FunctionResponse
	assert.Equal(t, "clock", second.Name)
	assert.Equal(t, map[string]any{"error": "Error: boom"}, second.Response)

	assert.Equal(t, "model", contents[3].Role)
}

func TestExtractToolCalls(t *testing.T) {
	calls := extractToolCalls([]*genai.Part{
		{Text: "thinking out loud"},
		{FunctionCall: &genai.FunctionCall{ID: "fc_1", Name: "search", Args: map[string]any{"query": "x"}}},
		{FunctionCall: &genai.FunctionCall{Name: "clock"}},
	})

	require.Len(t, calls, 2)
	assert.Equal(t, "fc_1", calls[0].ID)
	assert.JSONEq(t, `{"query":"x"}`, calls[0].Arguments)
	assert.True(t, strings.HasPrefix(calls[1].ID, "call_"))
	assert.Equal(t, "{}", calls[1].Arguments)
	assert.NotEqual(t, calls[0].ID, calls[1].ID)
}

func TestConvertSchema(t *testing.T) {
	s := convertSchema(json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "q"},
			"format": {"type": "string", "enum": ["a", "b"]},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["query"]
	}`))

	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"query"}, s.Required)
	assert.Equal(t, "q", s.Properties["query"].Description)
	assert.Equal(t, []string{"a", "b"}, s.Properties["format"].Enum)
	assert.Equal(t, genai.TypeString, s.Properties["tags"].Items.Type)

	assert.Nil(t, convertSchema(nil))
	assert.Nil(t, convertSchema(json.RawMessage(`not json`)))
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(data, &body))
		assert.Contains(t, body, "systemInstruction")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"functionCall": {"name": "search", "args": {"query": "tokyo"}}}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 5, "candidatesTokenCount": 3}
		}`)
	}))
	defer srv.Close()

	c, err := New(context.Background(), "key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := c.Chat(context.Background(),
		[]ai.Message{ai.NewSystemMessage("sys"), ai.NewUserMessage("q")},
		ai.WithTools([]ai.Tool{{Name: "search", Parameters: json.RawMessage(`{"type":"object"}`)}}),
	)
	require.NoError(t, err)

	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 5, OutputTokens: 3}, resp.Usage)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "search", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"query":"tokyo"}`, resp.ToolCalls[0].Arguments)
}
