package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		content string
		isError bool
		want    string
	}{
		{"answer entry is not a hit", `[{"answer":"About 14 million."},{"content":"Tokyo"}]`, false, "1 result, answer: About 14 million."},
		{"three hits and an answer", `[{"answer":"yes"},{"content":"a","url":"u1"},{"content":"b","url":"u2"},{"content":"c","url":"u3"}]`, false, "3 results, answer: yes"},
		{"plain content first", `[{"title":"a","content":"first\nline"},{"content":"second"}]`, false, "2 results, first: first line"},
		{"single hit", `[{"content":"only"}]`, false, "1 result, first: only"},
		{"answer only", `[{"answer":"42"}]`, false, "0 results, answer: 42"},
		{"empty array", `[]`, false, "0 results"},
		{"plain text", "2024-03-09T14:30:00Z", false, "2024-03-09T14:30:00Z"},
		{"error", "Error: tool not found: x", true, "Error: tool not found: x"},
		{"long", strings.Repeat("a", 150), false, strings.Repeat("a", 100) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.content, tt.isError))
		})
	}
}

func TestRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)

	call := ai.ToolCall{ID: "c1", Name: "calculator", Arguments: `{"expression":"1+2"}`}
	result := ai.ToolResult{ToolCallID: "c1", Content: "3"}

	events := make(chan agent.Event, 16)
	events <- agent.Event{Type: agent.EventRunStart, RunID: "a", Question: "what is 1+2?", MaxIterations: 2}
	events <- agent.Event{Type: agent.EventRunStart, RunID: "b", Question: "second", MaxIterations: 2}
	events <- agent.Event{Type: agent.EventIterationStart, RunID: "a", Iteration: 1, MaxIterations: 2}
	events <- agent.Event{Type: agent.EventToolCall, RunID: "a", ToolCall: &call}
	events <- agent.Event{Type: agent.EventToolResult, RunID: "a", ToolCall: &call, ToolResult: &result}
	events <- agent.Event{Type: agent.EventForcedFinal, RunID: "a", MaxIterations: 2}
	events <- agent.Event{Type: agent.EventRunEnd, RunID: "a", Iteration: 2, Answer: "3", Termination: agent.TerminationForcedFinal}
	events <- agent.Event{Type: agent.EventRunError, RunID: "b", Error: errors.New("rate limited")}
	close(events)

	r.consume(events)
	out := buf.String()

	assert.Contains(t, out, "[1] Question: what is 1+2?")
	assert.Contains(t, out, "[2] Question: second")
	assert.Contains(t, out, "[1] Iteration 1/2")
	assert.Contains(t, out, `[1]   tool calculator {"expression":"1+2"}`)
	assert.Contains(t, out, "[1]   -> 3")
	assert.Contains(t, out, "[1] Reached 2 iterations")
	assert.Contains(t, out, "[1] Done (forced_final) after 2 iterations")
	assert.NotContains(t, out, "Answer")
	assert.Contains(t, out, "[2] Failed: rate limited")
}

type fixedProvider struct{ answer string }

func (p fixedProvider) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return &ai.Response{Content: p.answer}, nil
}

func TestPrintResults(t *testing.T) {
	results := []agent.BatchResult{
		{Question: "first?", Result: &agent.Result{Answer: "one", Termination: agent.TerminationAnswered}},
		{Question: "second?", Err: errors.New("rate limited")},
	}

	t.Run("full output", func(t *testing.T) {
		var buf bytes.Buffer
		printResults(&buf, results, false)
		out := buf.String()

		assert.Contains(t, out, "[Q1] Question: first?")
		assert.Contains(t, out, "Answer (answered):\none\n")
		assert.Contains(t, out, "[Q2] Question: second?")
		assert.Contains(t, out, "Failed: rate limited")
		assert.Less(t, strings.Index(out, "first?"), strings.Index(out, "second?"))
	})

	t.Run("quiet prints answers only", func(t *testing.T) {
		var buf bytes.Buffer
		printResults(&buf, results, true)
		assert.Equal(t, "one\n", buf.String())
	})

	t.Run("answer survives dropped events", func(t *testing.T) {
		events := make(chan agent.Event, 1)
		a := agent.New(fixedProvider{answer: "best effort"}, nil, agent.WithEvents(events))

		batch, err := a.RunBatch(context.Background(), []string{"q"}, 1)
		require.NoError(t, err)
		close(events)

		var delivered []agent.EventType
		for ev := range events {
			delivered = append(delivered, ev.Type)
		}
		assert.NotContains(t, delivered, agent.EventRunEnd)

		var buf bytes.Buffer
		printResults(&buf, batch, false)
		assert.Contains(t, buf.String(), "best effort")
	})
}
