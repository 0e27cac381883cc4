package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spetersoncode/scout/agent"
)

const (
	ruleWidth    = 70
	snippetWidth = 100
)

// styles colour progress output. The color profile follows the writer, so
// output that is not a terminal stays plain.
type styles struct {
	rule, label, tool, failure, answer lipgloss.Style
}

func newStyles(w io.Writer) styles {
	lr := lipgloss.NewRenderer(w)
	return styles{
		rule:    lr.NewStyle().Faint(true),
		label:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		tool:    lr.NewStyle().Foreground(lipgloss.Color("3")),
		failure: lr.NewStyle().Foreground(lipgloss.Color("1")),
		answer:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	}
}

// renderer prints agent progress as runs advance. Runs are numbered in the
// order they start.
type renderer struct {
	w    io.Writer
	st   styles
	runs map[string]int
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w, st: newStyles(w), runs: make(map[string]int)}
}

func (r *renderer) consume(events <-chan agent.Event) {
	for ev := range events {
		r.render(ev)
	}
}

func (r *renderer) label(runID string) string {
	n, ok := r.runs[runID]
	if !ok {
		n = len(r.runs) + 1
		r.runs[runID] = n
	}
	return r.st.label.Render(fmt.Sprintf("[%d]", n))
}

func (r *renderer) rule(ch string) {
	fmt.Fprintln(r.w, r.st.rule.Render(strings.Repeat(ch, ruleWidth)))
}

func (r *renderer) render(ev agent.Event) {
	label := r.label(ev.RunID)

	switch ev.Type {
	case agent.EventRunStart:
		r.rule("=")
		fmt.Fprintf(r.w, "%s Question: %s\n", label, ev.Question)
		r.rule("=")

	case agent.EventIterationStart:
		fmt.Fprintf(r.w, "%s Iteration %d/%d\n", label, ev.Iteration, ev.MaxIterations)

	case agent.EventToolCall:
		if ev.ToolCall != nil {
			fmt.Fprintf(r.w, "%s   tool %s %s\n", label, r.st.tool.Render(ev.ToolCall.Name), ev.ToolCall.Arguments)
		}

	case agent.EventToolResult:
		if ev.ToolResult != nil {
			line := summarize(ev.ToolResult.Content, ev.ToolResult.IsError)
			if ev.ToolResult.IsError {
				line = r.st.failure.Render(line)
			}
			fmt.Fprintf(r.w, "%s   -> %s\n", label, line)
		}

	case agent.EventForcedFinal:
		fmt.Fprintf(r.w, "%s Reached %d iterations, answering with what was gathered\n", label, ev.MaxIterations)

	case agent.EventRunEnd:
		fmt.Fprintf(r.w, "%s Done (%s) after %d iterations\n", label, ev.Termination, ev.Iteration)

	case agent.EventRunError:
		fmt.Fprintf(r.w, "%s %s\n", label, r.st.failure.Render(fmt.Sprintf("Failed: %v", ev.Error)))
	}
}

// printResults writes every answer in question order. Progress events may be
// dropped under load; results from the batch are not.
func printResults(w io.Writer, results []agent.BatchResult, quiet bool) {
	if quiet {
		for _, res := range results {
			if res.Err == nil && res.Result != nil {
				fmt.Fprintln(w, res.Result.Answer)
			}
		}
		return
	}

	st := newStyles(w)
	for i, res := range results {
		fmt.Fprintln(w, st.rule.Render(strings.Repeat("=", ruleWidth)))
		fmt.Fprintf(w, "%s Question: %s\n", st.label.Render(fmt.Sprintf("[Q%d]", i+1)), res.Question)
		fmt.Fprintln(w, st.rule.Render(strings.Repeat("-", ruleWidth)))
		if res.Err != nil || res.Result == nil {
			fmt.Fprintln(w, st.failure.Render(fmt.Sprintf("Failed: %v", res.Err)))
			continue
		}
		fmt.Fprintln(w, st.answer.Render(fmt.Sprintf("Answer (%s):", res.Result.Termination)))
		fmt.Fprintln(w, res.Result.Answer)
	}
	if len(results) > 0 {
		fmt.Fprintln(w, st.rule.Render(strings.Repeat("=", ruleWidth)))
	}
}

// summarize describes a tool result in one line. Search output is a JSON
// array of hits, optionally led by an {"answer": ...} entry; the hit count
// and the answer or first hit's text are shown.
func summarize(content string, isError bool) string {
	if isError {
		return truncate(content, snippetWidth)
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(content), &entries); err != nil {
		return truncate(content, snippetWidth)
	}

	var answer, first string
	hits := 0
	for _, e := range entries {
		if a, ok := e["answer"].(string); ok && e["url"] == nil {
			answer = a
			continue
		}
		if hits == 0 {
			first, _ = e["content"].(string)
		}
		hits++
	}

	noun := "results"
	if hits == 1 {
		noun = "result"
	}
	summary := fmt.Sprintf("%d %s", hits, noun)
	switch {
	case answer != "":
		return summary + ", answer: " + truncate(answer, snippetWidth)
	case first != "":
		return summary + ", first: " + truncate(first, snippetWidth)
	}
	return summary
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
