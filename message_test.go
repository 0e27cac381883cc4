package scout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("tool"), RoleTool)
}

func TestMessageConstructors(t *testing.T) {
	sys := NewSystemMessage("be brief")
	assert.Equal(t, RoleSystem, sys.Role)
	assert.Equal(t, "be brief", sys.Content)

	user := NewUserMessage("hi")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hi", user.Content)
	assert.False(t, user.HasToolCalls())
}

func TestResponseMessage(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		resp := &Response{Content: "Paris"}
		msg := resp.Message()

		assert.Equal(t, RoleAssistant, msg.Role)
		assert.Equal(t, "Paris", msg.Content)
		assert.False(t, msg.HasToolCalls())
		assert.True(t, strings.HasPrefix(msg.ID, "msg-"))
	})

	t.Run("carries tool calls", func(t *testing.T) {
		resp := &Response{
			ToolCalls: []ToolCall{{ID: "c1", Name: "search", Arguments: `{"query":"x"}`}},
		}
		msg := resp.Message()

		assert.True(t, msg.HasToolCalls())
		assert.Equal(t, "c1", msg.ToolCalls[0].ID)
		assert.Empty(t, msg.Content)
	})
}

func TestGenerateMessageID(t *testing.T) {
	a, b := GenerateMessageID(), GenerateMessageID()
	assert.NotEqual(t, a, b)
}

func TestUsage(t *testing.T) {
	u := Usage{InputTokens: 10, OutputTokens: 5}.Add(Usage{InputTokens: 3, OutputTokens: 2})
	assert.Equal(t, Usage{InputTokens: 13, OutputTokens: 7}, u)
	assert.Equal(t, 20, u.Total())
	assert.Zero(t, Usage{}.Total())
}
