package agent

import "fmt"

// Status is the phase of a run.
type Status string

const (
	StatusRunning     Status = "running"
	StatusAnswered    Status = "answered"
	StatusForcedFinal Status = "forced_final"
	StatusFailed      Status = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

// TerminationReason indicates why the agent stopped execution.
type TerminationReason string

const (
	// TerminationAnswered indicates the model replied without tool calls.
	TerminationAnswered TerminationReason = "answered"

	// TerminationForcedFinal indicates the iteration budget ran out and the
	// answer came from the plain final call.
	TerminationForcedFinal TerminationReason = "forced_final"

	// TerminationError indicates a model call failed or the context ended.
	TerminationError TerminationReason = "error"
)

// State tracks a run's position in the loop. Iteration counts completed
// tool-deciding model calls.
type State struct {
	Iteration int
	Status    Status
}

func (s *State) next() {
	s.Iteration++
}

// finish moves the run into a terminal status. A run terminates once.
func (s *State) finish(status Status) {
	if s.Status.Terminal() {
		panic(fmt.Sprintf("agent: run already finished as %s", s.Status))
	}
	s.Status = status
}

func (s State) reason() TerminationReason {
	switch s.Status {
	case StatusAnswered:
		return TerminationAnswered
	case StatusForcedFinal:
		return TerminationForcedFinal
	default:
		return TerminationError
	}
}
