package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/agent"
	"github.com/spetersoncode/scout/client"
	"github.com/spetersoncode/scout/internal/config"
	"github.com/spetersoncode/scout/internal/telemetry"
	"github.com/spetersoncode/scout/mcp"
	"github.com/spetersoncode/scout/model"
	"github.com/spetersoncode/scout/tool"
)

// defaultQuestions are asked when none are given. Both need fresh facts and
// more than one lookup.
var defaultQuestions = []string{
	"Who won the 2025 League of Legends World Championship, and who are the team's key players?",
	"Has the price of bitcoin gone above 100,000 US dollars? If so, when did it first happen?",
}

// AskCmd answers questions with the agent loop.
type AskCmd struct {
	Questions []string `arg:"" optional:"" help:"Questions to answer. Two sample questions are used when none are given."`

	Provider      string   `help:"LLM provider (anthropic, openai, google)."`
	Model         string   `help:"Model name."`
	Temperature   *float64 `help:"Sampling temperature."`
	MaxIterations int      `name:"max-iterations" short:"n" help:"Tool-deciding model calls before a final answer is forced."`
	Concurrency   int      `short:"j" help:"Questions answered at once."`
	Instructions  string   `help:"Replace the default system instructions."`
	MCP           []string `name:"mcp" help:"MCP server to import tools from: a command line or an http(s) SSE URL. Repeatable." placeholder:"TARGET"`
	NoSearch      bool     `name:"no-search" help:"Do not register the web search tool."`
	Quiet         bool     `short:"q" help:"Print only the answers."`
}

func (c *AskCmd) apply(cfg *config.Config) {
	if c.Provider != "" {
		cfg.Provider = c.Provider
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.Temperature != nil {
		cfg.Temperature = *c.Temperature
	}
	if c.MaxIterations != 0 {
		cfg.MaxIterations = c.MaxIterations
	}
	if c.Concurrency != 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Instructions != "" {
		cfg.Instructions = c.Instructions
	}
}

func (c *AskCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := telemetry.Setup(cfg.Trace, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("trace shutdown failed", "error", err)
		}
	}()

	clientEvents := make(chan client.Event, 64)
	var clientOpts []client.ClientOption
	clientOpts = append(clientOpts, client.WithDefaultTemperature(cfg.Temperature))
	if cfg.MaxTokens > 0 {
		clientOpts = append(clientOpts, client.WithDefaultMaxTokens(cfg.MaxTokens))
	}
	llm, err := client.New(client.Config{
		Provider: cfg.ProviderName(),
		Model:    cfg.Model,
		APIKeys: client.APIKeys{
			Anthropic: cfg.AnthropicKey,
			OpenAI:    cfg.OpenAIKey,
			Google:    cfg.GoogleKey,
		},
		Events: clientEvents,
	}, clientOpts...)
	if err != nil {
		var missing *client.ErrMissingAPIKey
		if errors.As(err, &missing) {
			return fmt.Errorf("%w (check your environment or .env file)", err)
		}
		return err
	}

	registry, closeRemotes, err := c.buildRegistry(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRemotes()

	questions := c.Questions
	if len(questions) == 0 {
		questions = defaultQuestions
	}

	opts := []agent.Option{
		agent.WithMaxIterations(cfg.MaxIterations),
		agent.WithLogger(logger),
		agent.WithTracer(tp.Tracer("github.com/spetersoncode/scout/agent")),
	}
	if cfg.Instructions != "" {
		opts = append(opts, agent.WithInstructions(cfg.Instructions))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logClientEvents(logger, clientEvents)
	}()

	var out io.Writer = os.Stdout
	var events chan agent.Event
	if !c.Quiet {
		events = make(chan agent.Event, 256)
		opts = append(opts, agent.WithEvents(events))
		r := newRenderer(out)
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.consume(events)
		}()
	}

	a := agent.New(llm, registry, opts...)
	logger.Debug("agent ready",
		"provider", llm.Provider(),
		"model", llm.Model(),
		"tools", registry.Names(),
		"questions", len(questions),
	)

	results, batchErr := a.RunBatch(ctx, questions, cfg.Concurrency)
	close(clientEvents)
	if events != nil {
		close(events)
	}
	wg.Wait()

	var (
		failed []error
		usage  ai.Usage
	)
	for i, res := range results {
		if res.Result != nil {
			usage = usage.Add(res.Result.Usage)
		}
		if res.Err != nil {
			failed = append(failed, fmt.Errorf("question %d: %w", i+1, res.Err))
		}
	}
	printResults(out, results, c.Quiet)
	logUsage(logger, llm.Model(), usage)
	if batchErr != nil {
		return batchErr
	}
	return errors.Join(failed...)
}

// buildRegistry registers the built-in tools and any remote MCP tools. The
// registry is complete before the first run starts.
func (c *AskCmd) buildRegistry(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*tool.Registry, func(), error) {
	registry := tool.NewRegistry()

	searchKey := cfg.TavilyKey
	if c.NoSearch {
		searchKey = ""
	} else if searchKey == "" {
		logger.Warn("TAVILY_API_KEY not set, web search disabled")
	}
	if err := registry.RegisterAll(tool.Builtins(searchKey, cfg.SearchOptions()...)...); err != nil {
		return nil, nil, err
	}

	var remotes []*mcp.RemoteRegistry
	closeAll := func() {
		for _, r := range remotes {
			if err := r.Close(); err != nil {
				logger.Debug("closing MCP client", "error", err)
			}
		}
	}

	for _, target := range c.MCP {
		remote, err := mcp.Dial(ctx, target)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connect MCP server %q: %w", target, err)
		}
		remotes = append(remotes, remote)
		if err := remote.RegisterInto(registry); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("import tools from %q: %w", target, err)
		}
		logger.Info("imported MCP tools", "server", target, "count", remote.Len())
	}

	return registry, closeAll, nil
}

// logUsage reports the batch's token totals and, for catalogued models, an
// estimated cost.
func logUsage(logger *slog.Logger, name string, usage ai.Usage) {
	attrs := []any{"model", name, "input_tokens", usage.InputTokens, "output_tokens", usage.OutputTokens}
	if cost, ok := model.EstimateCost(name, usage); ok {
		attrs = append(attrs, "cost_usd", fmt.Sprintf("%.6f", cost))
	}
	logger.Info("token usage", attrs...)
}

func logClientEvents(logger *slog.Logger, events <-chan client.Event) {
	for ev := range events {
		switch ev.Type {
		case client.EventRequestComplete:
			attrs := []any{"provider", ev.Provider, "model", ev.Model, "duration", ev.Duration}
			if ev.Usage != nil {
				attrs = append(attrs, "input_tokens", ev.Usage.InputTokens, "output_tokens", ev.Usage.OutputTokens)
			}
			if ev.Cost > 0 {
				attrs = append(attrs, "cost_usd", ev.Cost)
			}
			logger.Debug("model request complete", attrs...)
		case client.EventRequestError:
			logger.Debug("model request failed", "provider", ev.Provider, "duration", ev.Duration, "error", ev.Error,
				"category", ai.CategoryOf(ev.Error))
		}
	}
}
