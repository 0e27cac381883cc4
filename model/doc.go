// Package model is a catalog of chat models with their pricing.
//
// The agent reports token usage per run; this package turns it into an
// estimated cost:
//
//	cost, ok := model.EstimateCost("gpt-4o-mini", result.Usage)
//
// Prices are USD per million tokens and drift over time, so costs are
// estimates only.
package model
