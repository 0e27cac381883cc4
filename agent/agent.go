package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/tool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/spetersoncode/scout/agent"

var errNilResponse = errors.New("model returned no response")

// Agent answers questions by letting a model call tools in a bounded loop.
type Agent struct {
	model    ai.ChatProvider
	registry *tool.Registry
	defaults []Option
}

// New creates a new Agent with the given model and tool registry.
// Options given here apply to every run; options passed to Run are applied
// after them. A nil registry means no tools.
func New(model ai.ChatProvider, registry *tool.Registry, opts ...Option) *Agent {
	if registry == nil {
		registry = tool.NewRegistry()
	}
	return &Agent{
		model:    model,
		registry: registry,
		defaults: opts,
	}
}

// Result represents the final outcome of an agent execution.
type Result struct {
	RunID string

	// Answer is the final natural-language answer.
	Answer string

	Termination TerminationReason

	// Iterations is the number of tool-deciding model calls made.
	Iterations int

	// ModelCalls counts every model invocation, the forced-final one included.
	ModelCalls int

	// ToolCalls counts dispatched tool calls, unknown tools included.
	ToolCalls int

	// Usage aggregates token usage across all model calls.
	Usage ai.Usage

	transcript *Transcript
}

// Messages returns the conversation history as a slice.
func (r *Result) Messages() []ai.Message {
	if r.transcript == nil {
		return nil
	}
	return r.transcript.Messages()
}

// run holds the mutable state of one Run call. It is never shared.
type run struct {
	id         string
	opts       *Options
	logger     *slog.Logger
	state      State
	transcript *Transcript
	result     *Result
}

// Run answers question and returns the result.
//
// The run terminates in exactly one way: the model replies without tool calls
// (TerminationAnswered), or the budget is spent and a final plain call
// answers (TerminationForcedFinal). Tool failures never abort a run; they are
// fed back to the model as error results. A failed model call aborts with a
// *ModelError, and a cancelled context aborts with the context's error. On
// failure the partial result is returned alongside the error.
func (a *Agent) Run(ctx context.Context, question string, opts ...Option) (*Result, error) {
	options := ApplyOptions(append(append([]Option{}, a.defaults...), opts...)...)

	if a.model == nil {
		return nil, ErrNilModel
	}
	if options.MaxIterations < 1 {
		return nil, ErrInvalidMaxIterations
	}
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	r := &run{
		id:   uuid.NewString(),
		opts: options,
		transcript: newTranscript(
			ai.NewSystemMessage(options.Instructions),
			ai.NewUserMessage(question),
		),
		state: State{Status: StatusRunning},
	}
	r.logger = options.Logger.With("run_id", r.id)
	r.result = &Result{RunID: r.id, transcript: r.transcript}

	ctx, span := options.Tracer.Start(ctx, "agent.run",
		trace.WithAttributes(
			attribute.String("agent.run_id", r.id),
			attribute.Int("agent.max_iterations", options.MaxIterations),
			attribute.Int("agent.tools", a.registry.Len()),
		),
	)
	defer span.End()

	start := time.Now()
	r.logger.Debug("agent run started", "max_iterations", options.MaxIterations, "tools", a.registry.Names())
	emit(options.Events, Event{Type: EventRunStart, RunID: r.id, Question: question, MaxIterations: options.MaxIterations})

	err := a.loop(ctx, r)

	r.result.Iterations = r.state.Iteration
	r.result.Termination = r.state.reason()
	span.SetAttributes(
		attribute.String("agent.termination", string(r.result.Termination)),
		attribute.Int("agent.iterations", r.result.Iterations),
		attribute.Int("agent.tool_calls", r.result.ToolCalls),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("agent run failed", "iteration", r.state.Iteration, "error", err)
		emit(options.Events, Event{
			Type:          EventRunError,
			RunID:         r.id,
			Iteration:     r.state.Iteration,
			MaxIterations: options.MaxIterations,
			Termination:   TerminationError,
			Error:         err,
		})
		return r.result, err
	}

	r.logger.Info("agent run finished",
		"termination", r.result.Termination,
		"iterations", r.result.Iterations,
		"model_calls", r.result.ModelCalls,
		"tool_calls", r.result.ToolCalls,
		"messages", r.transcript.Len(),
		"tokens", r.result.Usage.Total(),
		"duration", time.Since(start),
	)
	emit(options.Events, Event{
		Type:          EventRunEnd,
		RunID:         r.id,
		Iteration:     r.state.Iteration,
		MaxIterations: options.MaxIterations,
		Answer:        r.result.Answer,
		Termination:   r.result.Termination,
	})
	return r.result, nil
}

func (a *Agent) loop(ctx context.Context, r *run) error {
	chatOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, r.opts.ChatOptions...)

	for r.state.Iteration < r.opts.MaxIterations {
		iteration := r.state.Iteration + 1
		emit(r.opts.Events, Event{Type: EventIterationStart, RunID: r.id, Iteration: iteration, MaxIterations: r.opts.MaxIterations})

		resp, err := a.callModel(ctx, r, a.model, chatOpts, iteration, false)
		if err != nil {
			r.state.finish(StatusFailed)
			return err
		}
		r.state.next()

		msg := resp.Message()
		r.transcript.append(msg)

		if !msg.HasToolCalls() {
			r.logger.Debug("model answered", "iteration", iteration)
			r.result.Answer = resp.Content
			r.state.finish(StatusAnswered)
			return nil
		}

		r.logger.Debug("model requested tools", "iteration", iteration, "count", len(msg.ToolCalls))
		for _, call := range msg.ToolCalls {
			a.dispatch(ctx, r, call, iteration)
		}
	}

	r.logger.Info("iteration budget exhausted, forcing final answer", "max_iterations", r.opts.MaxIterations)
	emit(r.opts.Events, Event{Type: EventForcedFinal, RunID: r.id, Iteration: r.state.Iteration, MaxIterations: r.opts.MaxIterations})

	r.transcript.append(ai.NewUserMessage(r.opts.FinalPrompt))

	final := r.opts.FinalModel
	if final == nil {
		final = a.model
	}
	// Tool definitions stay bound so providers accept the tool blocks already
	// in the transcript; the choice forbids new calls.
	finalOpts := append(append([]ai.Option{}, r.opts.ChatOptions...),
		ai.WithTools(a.registry.Tools()),
		ai.WithToolChoice(ai.ToolChoiceNone),
	)

	resp, err := a.callModel(ctx, r, final, finalOpts, r.opts.MaxIterations+1, true)
	if err != nil {
		r.state.finish(StatusFailed)
		return err
	}

	// Tool calls in the final response are ignored.
	if len(resp.ToolCalls) > 0 {
		r.logger.Warn("ignoring tool calls in final response", "count", len(resp.ToolCalls))
	}
	r.transcript.append(ai.Message{
		ID:      ai.GenerateMessageID(),
		Role:    ai.RoleAssistant,
		Content: resp.Content,
	})
	r.result.Answer = resp.Content
	r.state.finish(StatusForcedFinal)
	return nil
}

func (a *Agent) callModel(ctx context.Context, r *run, model ai.ChatProvider, opts []ai.Option, iteration int, final bool) (*ai.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := r.opts.Tracer.Start(ctx, "agent.model_call",
		trace.WithAttributes(
			attribute.Int("agent.iteration", iteration),
			attribute.Bool("agent.final", final),
		),
	)
	defer span.End()

	resp, err := model.Chat(ctx, r.transcript.Messages(), opts...)
	r.result.ModelCalls++
	if err == nil && resp == nil {
		err = errNilResponse
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &ModelError{Iteration: iteration, Final: final, Err: err}
	}

	r.result.Usage = r.result.Usage.Add(resp.Usage)
	span.SetAttributes(
		attribute.Int("agent.tool_calls", len(resp.ToolCalls)),
		attribute.Int("gen_ai.usage.input_tokens", resp.Usage.InputTokens),
		attribute.Int("gen_ai.usage.output_tokens", resp.Usage.OutputTokens),
	)
	return resp, nil
}

// dispatch runs one tool call and appends exactly one result for it.
func (a *Agent) dispatch(ctx context.Context, r *run, call ai.ToolCall, iteration int) {
	r.result.ToolCalls++
	emit(r.opts.Events, Event{Type: EventToolCall, RunID: r.id, Iteration: iteration, MaxIterations: r.opts.MaxIterations, ToolCall: &call})

	ctx, span := r.opts.Tracer.Start(ctx, "agent.tool_call",
		trace.WithAttributes(
			attribute.String("agent.tool.name", call.Name),
			attribute.String("agent.tool.call_id", call.ID),
			attribute.Int("agent.iteration", iteration),
		),
	)
	defer span.End()

	log := r.logger.With("tool", call.Name, "call_id", call.ID, "iteration", iteration)
	log.Debug("dispatching tool", "arguments", call.Arguments)

	result, err := a.registry.Execute(ctx, call)
	if err != nil {
		var notFound *tool.ErrToolNotFound
		if errors.As(err, &notFound) {
			log.Warn("model requested unknown tool")
		} else {
			log.Warn("tool failed", "error", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Bool("agent.tool.error", result.IsError))

	r.transcript.append(ai.NewToolResultMessage(result))
	emit(r.opts.Events, Event{Type: EventToolResult, RunID: r.id, Iteration: iteration, MaxIterations: r.opts.MaxIterations, ToolCall: &call, ToolResult: &result})
}
