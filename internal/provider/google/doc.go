// Package google adapts the Gemini API (google.golang.org/genai) to
// scout.ChatProvider.
package google
