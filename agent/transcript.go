package agent

import (
	"sync"

	ai "github.com/spetersoncode/scout"
)

// Transcript is the append-only message history of a single run.
type Transcript struct {
	mu       sync.RWMutex
	messages []ai.Message
}

func newTranscript(msgs ...ai.Message) *Transcript {
	t := &Transcript{messages: make([]ai.Message, 0, len(msgs)+4)}
	t.messages = append(t.messages, msgs...)
	return t
}

// Messages returns a copy of all messages.
func (t *Transcript) Messages() []ai.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]ai.Message, len(t.messages))
	copy(result, t.messages)
	return result
}

func (t *Transcript) append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msgs...)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
