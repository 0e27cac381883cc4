// Package tool provides the tool registry used by the agent loop and the
// built-in tools.
//
// Every tool is a definition plus a Handler with one uniform signature:
//
//	func(ctx context.Context, call scout.ToolCall) (string, error)
//
// A Registry maps tool names to handlers. It is built before a run starts;
// the agent only reads from it. Registry.Execute never lets a handler
// failure escape as a panic: unknown tools, handler errors and recovered
// panics all come back as an error ToolResult, ready to be appended to the
// transcript.
//
// # Typed Handlers
//
//	type WeatherArgs struct {
//	    Location string `json:"location" desc:"City name" required:"true"`
//	    Unit     string `json:"unit" desc:"Temperature unit" enum:"celsius,fahrenheit"`
//	}
//
//	registry := tool.NewRegistry()
//	tool.MustBindTo(registry, "get_weather", "Get current weather",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return fmt.Sprintf(`{"temp": 72, "location": %q}`, args.Location), nil
//	    })
//
// # Built-in Tools
//
//   - NewSearchTool: Tavily web search with an expiring cache and rate limit
//   - NewCalculatorTool: arithmetic evaluated with CEL
//   - NewClockTool: the current date and time
package tool
