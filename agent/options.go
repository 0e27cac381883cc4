package agent

import (
	"io"
	"log/slog"

	ai "github.com/spetersoncode/scout"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxIterations is the number of tool-deciding model calls a run may
// make before a final answer is forced.
const DefaultMaxIterations = 5

// Options contains configuration for agent execution.
type Options struct {
	// MaxIterations bounds the tool-deciding model calls. Must be at least 1.
	MaxIterations int

	// Instructions is the system message that opens every transcript.
	Instructions string

	// FinalPrompt is the user message appended when the iteration budget is
	// exhausted, asking the model to answer with what it has gathered.
	FinalPrompt string

	// FinalModel answers the forced-final call. Defaults to the agent's
	// model, invoked with tool choice "none".
	FinalModel ai.ChatProvider

	// ChatOptions are passed through to every model call.
	ChatOptions []ai.Option

	Logger *slog.Logger
	Tracer trace.Tracer

	// Events receives progress events. Sends never block; events are dropped
	// when the channel is full.
	Events chan<- Event
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxIterations sets the iteration budget. Default is 5.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithInstructions replaces the default system instructions.
func WithInstructions(instructions string) Option {
	return func(o *Options) {
		o.Instructions = instructions
	}
}

// WithFinalPrompt replaces the instruction sent with the forced-final call.
func WithFinalPrompt(prompt string) Option {
	return func(o *Options) {
		o.FinalPrompt = prompt
	}
}

// WithFinalModel uses a separate model for the forced-final call.
func WithFinalModel(model ai.ChatProvider) Option {
	return func(o *Options) {
		o.FinalModel = model
	}
}

// WithChatOptions passes options through to the ChatProvider.
// These options are applied to every chat call made by the agent.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for chat calls.
func WithModel(model string) Option {
	return WithChatOptions(ai.WithModel(model))
}

// WithTemperature is a convenience option to set temperature for chat calls.
func WithTemperature(t float64) Option {
	return WithChatOptions(ai.WithTemperature(t))
}

// WithLogger sets the logger for run progress. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTracer sets the tracer used for run, model call and tool call spans.
// The global otel tracer is used otherwise.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = tracer
	}
}

// WithEvents sets the channel that receives progress events. Sends never
// block; events are dropped while the channel is full.
func WithEvents(ch chan<- Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxIterations: DefaultMaxIterations,
		Instructions:  DefaultInstructions,
		FinalPrompt:   DefaultFinalPrompt,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer(tracerName)
	}
	return o
}
