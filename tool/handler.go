package tool

import (
	"context"

	ai "github.com/spetersoncode/scout"
)

// Handler executes a tool call and returns its textual output.
// Every tool is invoked through this one signature.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// TypedHandler is a function that executes a tool call with typed arguments.
// The args parameter is unmarshaled from the tool call's JSON arguments.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// ToolPair groups a tool definition with its handler.
type ToolPair struct {
	Tool    ai.Tool
	Handler Handler
}
