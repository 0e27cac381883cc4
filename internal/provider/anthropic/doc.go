// Package anthropic adapts the Anthropic Messages API to [scout.ChatProvider].
//
// System messages become the request's system prompt. Tool calls map to
// tool_use blocks and tool results to tool_result blocks; consecutive tool
// results are sent together in one user turn.
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"), anthropic.WithModel("claude-haiku-4-5"))
//	resp, err := client.Chat(ctx, messages, scout.WithTools(registry.Tools()))
package anthropic
