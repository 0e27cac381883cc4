package scout

import "context"

// Provider identifies an AI provider.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
)

// ParseProvider resolves a provider name, accepting a few common aliases.
func ParseProvider(name string) (Provider, bool) {
	switch name {
	case "anthropic", "claude":
		return ProviderAnthropic, true
	case "openai", "gpt":
		return ProviderOpenAI, true
	case "google", "gemini":
		return ProviderGoogle, true
	default:
		return "", false
	}
}

// ChatProvider defines the interface for AI chat providers.
//
// A call made with WithTools is tool-bound and may return tool calls; a call
// without tools returns text only.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
