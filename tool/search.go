package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	ai "github.com/spetersoncode/scout"
	"golang.org/x/time/rate"
)

const (
	// SearchToolName is the name the search tool is bound under.
	SearchToolName = "tavily_search_results_json"

	// DefaultSearchEndpoint is the Tavily search API.
	DefaultSearchEndpoint = "https://api.tavily.com/search"
)

// Search depths accepted by Tavily.
const (
	SearchDepthBasic    = "basic"
	SearchDepthAdvanced = "advanced"
)

// ErrMissingSearchKey is returned by the search handler when no API key is set.
var ErrMissingSearchKey = errors.New("tool: tavily api key not set")

// SearchToolOption configures the search tool.
type SearchToolOption func(*searchToolConfig)

type searchToolConfig struct {
	endpoint        string
	client          *http.Client
	timeout         time.Duration
	maxResults      int
	depth           string
	includeAnswer   bool
	cacheSize       int
	cacheTTL        time.Duration
	ratePerSecond   float64
	burst           int
	maxResponseSize int64
}

// WithSearchEndpoint overrides the search API URL.
func WithSearchEndpoint(url string) SearchToolOption {
	return func(c *searchToolConfig) {
		c.endpoint = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) SearchToolOption {
	return func(c *searchToolConfig) {
		c.client = client
	}
}

// WithSearchTimeout sets the per-request timeout. Default is 30 seconds.
func WithSearchTimeout(d time.Duration) SearchToolOption {
	return func(c *searchToolConfig) {
		c.timeout = d
	}
}

// WithMaxResults limits the number of search results. Default is 3.
func WithMaxResults(n int) SearchToolOption {
	return func(c *searchToolConfig) {
		c.maxResults = n
	}
}

// WithSearchDepth sets the search depth, basic or advanced.
func WithSearchDepth(depth string) SearchToolOption {
	return func(c *searchToolConfig) {
		c.depth = depth
	}
}

// WithIncludeAnswer asks Tavily for a short synthesized answer.
func WithIncludeAnswer(include bool) SearchToolOption {
	return func(c *searchToolConfig) {
		c.includeAnswer = include
	}
}

// WithSearchCache sets the result cache size and entry lifetime.
// A size of zero disables caching.
func WithSearchCache(size int, ttl time.Duration) SearchToolOption {
	return func(c *searchToolConfig) {
		c.cacheSize = size
		c.cacheTTL = ttl
	}
}

// WithRateLimit caps outbound requests per second. A rate of zero
// disables limiting.
func WithRateLimit(perSecond float64, burst int) SearchToolOption {
	return func(c *searchToolConfig) {
		c.ratePerSecond = perSecond
		c.burst = burst
	}
}

func applySearchOpts(opts []SearchToolOption) *searchToolConfig {
	cfg := &searchToolConfig{
		endpoint:        DefaultSearchEndpoint,
		timeout:         30 * time.Second,
		maxResults:      3,
		depth:           SearchDepthAdvanced,
		includeAnswer:   true,
		cacheSize:       128,
		cacheTTL:        15 * time.Minute,
		ratePerSecond:   2,
		burst:           2,
		maxResponseSize: 1024 * 1024,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}
	if cfg.burst < 1 {
		cfg.burst = 1
	}
	return cfg
}

type searchArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
	IncludeImages     bool   `json:"include_images"`
}

type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []SearchResult `json:"results"`
}

// SearchResult is one hit returned by the search tool.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searcher struct {
	apiKey  string
	cfg     *searchToolConfig
	cache   *expirable.LRU[string, string]
	limiter *rate.Limiter
}

// NewSearchTool creates the web search tool backed by the Tavily API.
//
// The handler returns a JSON array of results. When Tavily supplies a
// synthesized answer it is the first element, as {"answer": "..."}.
// Identical queries are served from an expiring cache, and outbound
// requests wait on a token bucket.
func NewSearchTool(apiKey string, opts ...SearchToolOption) (ai.Tool, Handler) {
	cfg := applySearchOpts(opts)

	s := &searcher{apiKey: apiKey, cfg: cfg}
	if cfg.cacheSize > 0 {
		s.cache = expirable.NewLRU[string, string](cfg.cacheSize, nil, cfg.cacheTTL)
	}
	if cfg.ratePerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.ratePerSecond), cfg.burst)
	}

	t := ai.Tool{
		Name: SearchToolName,
		Description: "A search engine optimized for comprehensive, accurate, and trusted results. " +
			"Useful for when you need to answer questions about current events. " +
			"Input should be a search query.",
		Parameters: ai.SchemaFor[searchArgs](),
	}

	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args searchArgs
		if err := decodeArgs(call, &args); err != nil {
			return "", err
		}
		return s.search(ctx, args.Query)
	}

	return t, handler
}

func (s *searcher) search(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("query is required")
	}
	if s.apiKey == "" {
		return "", ErrMissingSearchKey
	}

	key := normalizeQuery(query)
	if s.cache != nil {
		if out, ok := s.cache.Get(key); ok {
			return out, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := s.fetch(ctx, query)
	if err != nil {
		return "", err
	}

	out, err := formatSearchResults(resp)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		s.cache.Add(key, out)
	}
	return out, nil
}

func (s *searcher) fetch(ctx context.Context, query string) (*tavilyResponse, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:        s.apiKey,
		Query:         query,
		MaxResults:    s.cfg.maxResults,
		SearchDepth:   s.cfg.depth,
		IncludeAnswer: s.cfg.includeAnswer,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.cfg.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.maxResponseSize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ai.NewStatusError(
			fmt.Sprintf("search failed with status %d: %s", resp.StatusCode, truncate(string(data), 200)),
			resp.StatusCode, nil)
	}

	var out tavilyResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}

func formatSearchResults(resp *tavilyResponse) (string, error) {
	entries := make([]any, 0, len(resp.Results)+1)
	if resp.Answer != "" {
		entries = append(entries, map[string]string{"answer": resp.Answer})
	}
	for _, r := range resp.Results {
		entries = append(entries, r)
	}
	out, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
