// Package openai adapts the OpenAI chat completions API to scout.ChatProvider.
package openai
