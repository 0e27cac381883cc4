package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		require.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
		assert.Nil(t, opts.Tools)
		assert.Empty(t, opts.ToolChoice)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		tools := []Tool{{Name: "search"}}
		opts := ApplyOptions(
			WithModel("gpt-4o"),
			WithMaxTokens(1000),
			WithTemperature(0),
			WithTools(tools),
			WithToolChoice(ToolChoiceAuto),
		)

		assert.Equal(t, "gpt-4o", opts.Model)
		assert.Equal(t, 1000, opts.MaxTokens)
		require.NotNil(t, opts.Temperature)
		assert.Equal(t, 0.0, *opts.Temperature)
		assert.Equal(t, tools, opts.Tools)
		assert.Equal(t, ToolChoiceAuto, opts.ToolChoice)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyOptions(WithModel("a"), WithModel("b"))
		assert.Equal(t, "b", opts.Model)
	})
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in   string
		want Provider
		ok   bool
	}{
		{"anthropic", ProviderAnthropic, true},
		{"claude", ProviderAnthropic, true},
		{"openai", ProviderOpenAI, true},
		{"gpt", ProviderOpenAI, true},
		{"google", ProviderGoogle, true},
		{"gemini", ProviderGoogle, true},
		{"mistral", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseProvider(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
