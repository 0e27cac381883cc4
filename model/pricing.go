package model

import ai "github.com/spetersoncode/scout"

// ChatPricing contains pricing per million tokens (USD) for chat models.
// Fields are zero if not applicable to a specific provider's model.
type ChatPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
	// CachedInputPerMillion is for prompt-cached input tokens (OpenAI only).
	CachedInputPerMillion float64
	// InputPerMillionLong and OutputPerMillionLong apply above 200K
	// tokens of context (Google only).
	InputPerMillionLong  float64
	OutputPerMillionLong float64
}

// longContextThreshold is the prompt size above which long-context rates apply.
const longContextThreshold = 200_000

// HasCachedPricing returns true if the model supports cached input pricing.
func (p ChatPricing) HasCachedPricing() bool {
	return p.CachedInputPerMillion > 0
}

// HasLongContextPricing returns true if the model has tiered pricing for long context.
func (p ChatPricing) HasLongContextPricing() bool {
	return p.InputPerMillionLong > 0 || p.OutputPerMillionLong > 0
}

// CalculateCost returns the estimated USD cost of usage at the given pricing.
// Long-context rates are used when the input exceeds 200K tokens and the
// model has them.
func CalculateCost(usage ai.Usage, pricing ChatPricing) float64 {
	in, out := pricing.InputPerMillion, pricing.OutputPerMillion
	if usage.InputTokens > longContextThreshold && pricing.HasLongContextPricing() {
		if pricing.InputPerMillionLong > 0 {
			in = pricing.InputPerMillionLong
		}
		if pricing.OutputPerMillionLong > 0 {
			out = pricing.OutputPerMillionLong
		}
	}
	return float64(usage.InputTokens)/1_000_000*in + float64(usage.OutputTokens)/1_000_000*out
}

// EstimateCost looks up id in the catalog and prices usage with it.
// The second return value is false for models the catalog does not know.
func EstimateCost(id string, usage ai.Usage) (float64, bool) {
	m, ok := Lookup(id)
	if !ok {
		return 0, false
	}
	return m.Cost(usage), true
}
