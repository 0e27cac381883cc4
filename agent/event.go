package agent

import (
	"time"

	ai "github.com/spetersoncode/scout"
)

// EventType identifies the kind of event occurring during agent execution.
type EventType string

const (
	// EventRunStart fires once the transcript is initialized.
	EventRunStart EventType = "run_start"

	// EventIterationStart fires before each tool-deciding model call.
	EventIterationStart EventType = "iteration_start"

	// EventToolCall fires before a requested tool is dispatched.
	EventToolCall EventType = "tool_call"

	// EventToolResult fires after a tool result is appended.
	EventToolResult EventType = "tool_result"

	// EventForcedFinal fires when the budget is exhausted, before the final call.
	EventForcedFinal EventType = "forced_final"

	// EventRunEnd fires when the run reaches Answered or ForcedFinal.
	EventRunEnd EventType = "run_end"

	// EventRunError fires when a model call fails or the context ends.
	EventRunError EventType = "run_error"
)

// Event represents an observable occurrence during agent execution.
type Event struct {
	Type EventType

	// RunID identifies the run the event belongs to.
	RunID string

	// Question is set for EventRunStart.
	Question string

	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// MaxIterations is the configured budget.
	MaxIterations int

	// ToolCall is set for tool events.
	ToolCall *ai.ToolCall

	// ToolResult is set for EventToolResult.
	ToolResult *ai.ToolResult

	// Answer is set for EventRunEnd.
	Answer      string
	Termination TerminationReason

	Error error

	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
