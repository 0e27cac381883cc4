package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	ai "github.com/spetersoncode/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessages(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		ai.NewSystemMessage("instructions"),
		ai.NewSystemMessage(""),
		ai.NewUserMessage("question"),
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{
			{ID: "toolu_1", Name: "search", Arguments: `{"query":"a"}`},
			{ID: "toolu_2", Name: "search", Arguments: `{"query":"b"}`},
		}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "toolu_1", Content: "r1"}),
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "toolu_2", Content: "Error: boom", IsError: true}),
		{Role: ai.RoleAssistant, Content: "answer"},
		ai.NewUserMessage("follow up"),
	})

	require.Len(t, system, 1)
	assert.Equal(t, "instructions", system[0].Text)

	require.Len(t, msgs, 5)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
	assert.Len(t, msgs[1].Content, 2)

	// both results land in one user turn
	assert.Equal(t, "user", string(msgs[2].Role))
	require.Len(t, msgs[2].Content, 2)
	require.NotNil(t, msgs[2].Content[0].OfToolResult)
	assert.Equal(t, "toolu_1", msgs[2].Content[0].OfToolResult.ToolUseID)
	require.NotNil(t, msgs[2].Content[1].OfToolResult)
	assert.Equal(t, "toolu_2", msgs[2].Content[1].OfToolResult.ToolUseID)

	assert.Equal(t, "assistant", string(msgs[3].Role))
	assert.Equal(t, "user", string(msgs[4].Role))
}

func TestConvertTools(t *testing.T) {
	tools := convertTools([]ai.Tool{
		{Name: "search", Description: "d", Parameters: json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"}},"required":["query"]}`)},
		{Name: "clock", Parameters: json.RawMessage(`{"type":"object"}`)},
	})
	require.Len(t, tools, 2)
	assert.Equal(t, "search", tools[0].OfTool.Name)
	assert.Equal(t, []string{"query"}, tools[0].OfTool.InputSchema.Required)
	assert.Equal(t, map[string]any{}, tools[1].OfTool.InputSchema.Properties)
}

func TestChat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("X-Api-Key"))
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"stop_reason": "tool_use",
			"content": [
				{"type": "text", "text": "Let me search."},
				{"type": "tool_use", "id": "toolu_1", "name": "search", "input": {"query": "tokyo"}}
			],
			"usage": {"input_tokens": 20, "output_tokens": 9}
		}`)
	}))
	defer srv.Close()

	c := New("sk-ant", WithBaseURL(srv.URL+"/"))
	resp, err := c.Chat(context.Background(),
		[]ai.Message{ai.NewSystemMessage("sys"), ai.NewUserMessage("q")},
		ai.WithTools([]ai.Tool{{Name: "search", Parameters: json.RawMessage(`{"type":"object"}`)}}),
	)
	require.NoError(t, err)

	assert.Equal(t, DefaultChatModel, body["model"])
	assert.Equal(t, float64(defaultMaxTokens), body["max_tokens"])

	assert.Equal(t, "Let me search.", resp.Content)
	assert.Equal(t, "tool_use", resp.FinishReason)
	assert.Equal(t, ai.Usage{InputTokens: 20, OutputTokens: 9}, resp.Usage)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "toolu_1", resp.ToolCalls[0].ID)
	assert.JSONEq(t, `{"query":"tokyo"}`, resp.ToolCalls[0].Arguments)
}

func TestChatError(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	_, err := New("bad", WithBaseURL(srv.URL+"/")).Chat(context.Background(), []ai.Message{ai.NewUserMessage("q")})
	require.Error(t, err)
	assert.True(t, ai.IsPermanent(err))
	assert.Equal(t, http.StatusUnauthorized, ai.StatusCodeOf(err))
	assert.Equal(t, 1, hits)
}

func TestChatToolChoiceNone(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_2",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"stop_reason": "end_turn",
			"content": [{"type": "text", "text": "About 14 million."}],
			"usage": {"input_tokens": 40, "output_tokens": 6}
		}`)
	}))
	defer srv.Close()

	// A history with tool blocks followed by an answer-now instruction.
	history := []ai.Message{
		ai.NewSystemMessage("sys"),
		ai.NewUserMessage("population of tokyo?"),
		{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "toolu_1", Name: "search", Arguments: `{"query":"tokyo"}`}}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "toolu_1", Content: "14 million"}),
		ai.NewUserMessage("answer now"),
	}
	tools := []ai.Tool{{Name: "search", Parameters: json.RawMessage(`{"type":"object"}`)}}

	c := New("sk-ant", WithBaseURL(srv.URL+"/"))
	resp, err := c.Chat(context.Background(), history, ai.WithTools(tools), ai.WithToolChoice(ai.ToolChoiceNone))
	require.NoError(t, err)
	assert.Equal(t, "About 14 million.", resp.Content)
	assert.Empty(t, resp.ToolCalls)

	// Tool blocks in the history require tool definitions on the request.
	raw, err := json.Marshal(body["messages"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tool_use"`)
	assert.Contains(t, string(raw), `"tool_result"`)

	require.Len(t, body["tools"], 1)
	assert.Equal(t, map[string]any{"type": "none"}, body["tool_choice"])
}
