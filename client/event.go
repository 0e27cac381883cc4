package client

import (
	"time"

	ai "github.com/spetersoncode/scout"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before an API request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after an API request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when an API request fails.
	EventRequestError EventType = "request_error"
)

// Event describes one chat request made through the client.
type Event struct {
	Type     EventType
	Provider ai.Provider
	Model    string
	Duration time.Duration
	Usage    *ai.Usage
	// Cost is the estimated USD cost of a completed request, zero when the
	// model has no catalog pricing.
	Cost  float64
	Error error

	// Timestamp is when the event occurred.
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
		// Channel full - don't block
	}
}
