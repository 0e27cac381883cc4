package model

import (
	"strings"

	ai "github.com/spetersoncode/scout"
)

// ChatModel represents a chat model from any provider.
type ChatModel struct {
	id       string
	provider ai.Provider
	pricing  ChatPricing
}

// String returns the API identifier for this model.
func (m ChatModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ChatModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ChatModel) Pricing() ChatPricing { return m.pricing }

// Cost returns the estimated USD cost of usage with this model.
func (m ChatModel) Cost(usage ai.Usage) float64 {
	return CalculateCost(usage, m.pricing)
}

// Anthropic Claude models.
var (
	ClaudeOpus45   = ChatModel{id: "claude-opus-4-5", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 5.00, OutputPerMillion: 25.00}}
	ClaudeSonnet45 = ChatModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	ClaudeHaiku45  = ChatModel{id: "claude-haiku-4-5", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 1.00, OutputPerMillion: 5.00}}
)

// OpenAI GPT models.
var (
	GPT4o     = ChatModel{id: "gpt-4o", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 2.50, OutputPerMillion: 10.00, CachedInputPerMillion: 1.25}}
	GPT4oMini = ChatModel{id: "gpt-4o-mini", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 0.15, OutputPerMillion: 0.60, CachedInputPerMillion: 0.075}}
	GPT41     = ChatModel{id: "gpt-4.1", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 2.00, OutputPerMillion: 8.00, CachedInputPerMillion: 0.50}}
	GPT41Mini = ChatModel{id: "gpt-4.1-mini", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 0.40, OutputPerMillion: 1.60, CachedInputPerMillion: 0.10}}
)

// Google Gemini models.
var (
	Gemini25Pro = ChatModel{id: "gemini-2.5-pro", provider: ai.ProviderGoogle, pricing: ChatPricing{
		InputPerMillion: 1.25, OutputPerMillion: 10.00,
		InputPerMillionLong: 2.50, OutputPerMillionLong: 15.00,
	}}
	Gemini25Flash     = ChatModel{id: "gemini-2.5-flash", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 0.30, OutputPerMillion: 2.50}}
	Gemini25FlashLite = ChatModel{id: "gemini-2.5-flash-lite", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 0.10, OutputPerMillion: 0.40}}
)

var catalog = []ChatModel{
	ClaudeOpus45, ClaudeSonnet45, ClaudeHaiku45,
	GPT4o, GPT4oMini, GPT41, GPT41Mini,
	Gemini25Pro, Gemini25Flash, Gemini25FlashLite,
}

// All returns every known chat model.
func All() []ChatModel {
	return append([]ChatModel(nil), catalog...)
}

// Lookup finds a model by its API identifier. Dated snapshots such as
// "gpt-4o-mini-2024-07-18" resolve to their base model.
func Lookup(id string) (ChatModel, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ChatModel{}, false
	}
	var best ChatModel
	for _, m := range catalog {
		if m.id == id {
			return m, true
		}
		if strings.HasPrefix(id, m.id+"-") && len(m.id) > len(best.id) {
			best = m
		}
	}
	return best, best.id != ""
}

// DefaultFor returns the model used for provider when none is configured.
func DefaultFor(provider ai.Provider) (ChatModel, bool) {
	switch provider {
	case ai.ProviderAnthropic:
		return ClaudeSonnet45, true
	case ai.ProviderOpenAI:
		return GPT4oMini, true
	case ai.ProviderGoogle:
		return Gemini25Flash, true
	}
	return ChatModel{}, false
}
