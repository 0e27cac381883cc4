package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/internal/provider/anthropic"
	"github.com/spetersoncode/scout/internal/provider/google"
	"github.com/spetersoncode/scout/internal/provider/openai"
	"github.com/spetersoncode/scout/model"
)

// ErrUnsupportedProvider is returned for a provider name the client does not know.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ErrMissingAPIKey is returned when the selected provider has no API key.
type ErrMissingAPIKey struct {
	Provider ai.Provider
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// APIKeys holds API keys for different providers.
// Only the key for the selected provider is required.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

func (k APIKeys) forProvider(p ai.Provider) string {
	switch p {
	case ai.ProviderAnthropic:
		return k.Anthropic
	case ai.ProviderOpenAI:
		return k.OpenAI
	case ai.ProviderGoogle:
		return k.Google
	default:
		return ""
	}
}

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the backend.
	Provider ai.Provider

	// Model overrides the provider's default model. Per-request
	// ai.WithModel still takes precedence.
	Model string

	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// BaseURL points the provider SDK at a different API root.
	BaseURL string

	// Events is an optional channel for receiving request events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithChatProvider replaces the SDK-backed adapter with p.
func WithChatProvider(p ai.ChatProvider) ClientOption {
	return func(c *Client) {
		c.chat = p
	}
}

// Client is a provider-agnostic chat client. The provider adapter is
// created on first use. Calls are made once; failures are not retried.
type Client struct {
	provider        ai.Provider
	model           string
	apiKey          string
	baseURL         string
	events          chan<- Event
	defaultChatOpts []ai.Option

	mu      sync.RWMutex
	chat    ai.ChatProvider
	initErr error
}

var _ ai.ChatProvider = (*Client)(nil)

// New creates a client for the configured provider. It fails fast on an
// unknown provider or a missing API key.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	provider, ok := ai.ParseProvider(string(cfg.Provider))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}

	name := cfg.Model
	if name == "" {
		if m, ok := model.DefaultFor(provider); ok {
			name = m.String()
		}
	}

	c := &Client{
		provider: provider,
		model:    name,
		apiKey:   cfg.APIKeys.forProvider(provider),
		baseURL:  cfg.BaseURL,
		events:   cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.chat == nil && c.apiKey == "" {
		return nil, &ErrMissingAPIKey{Provider: provider}
	}
	return c, nil
}

// Provider returns the selected provider.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Model returns the model requests default to. When Config.Model is empty
// this is the catalog default for the provider.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) chatProvider(ctx context.Context) (ai.ChatProvider, error) {
	c.mu.RLock()
	if c.chat != nil || c.initErr != nil {
		defer c.mu.RUnlock()
		return c.chat, c.initErr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.chat != nil || c.initErr != nil {
		return c.chat, c.initErr
	}

	switch c.provider {
	case ai.ProviderAnthropic:
		var opts []anthropic.ClientOption
		if c.baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(c.baseURL))
		}
		c.chat = anthropic.New(c.apiKey, opts...)
	case ai.ProviderOpenAI:
		var opts []openai.ClientOption
		if c.baseURL != "" {
			opts = append(opts, openai.WithBaseURL(c.baseURL))
		}
		c.chat = openai.New(c.apiKey, opts...)
	case ai.ProviderGoogle:
		var opts []google.ClientOption
		if c.baseURL != "" {
			opts = append(opts, google.WithBaseURL(c.baseURL))
		}
		g, err := google.New(ctx, c.apiKey, opts...)
		if err != nil {
			c.initErr = fmt.Errorf("failed to initialize Google client: %w", err)
			return nil, c.initErr
		}
		c.chat = g
	default:
		c.initErr = fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.provider)
	}
	return c.chat, c.initErr
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend defaults so per-request options override them
	all := make([]ai.Option, 0, len(c.defaultChatOpts)+len(opts)+1)
	if c.model != "" {
		all = append(all, ai.WithModel(c.model))
	}
	all = append(all, c.defaultChatOpts...)
	all = append(all, opts...)

	provider, err := c.chatProvider(ctx)
	if err != nil {
		return nil, err
	}

	modelName := ai.ApplyOptions(all...).Model
	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: c.provider,
		Model:    modelName,
	})

	resp, err := provider.Chat(ctx, messages, all...)
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: c.provider,
			Model:    modelName,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	cost, _ := model.EstimateCost(modelName, resp.Usage)
	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: c.provider,
		Model:    modelName,
		Duration: time.Since(start),
		Usage:    &resp.Usage,
		Cost:     cost,
	})
	return resp, nil
}
