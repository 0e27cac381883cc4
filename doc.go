// Package scout holds the vocabulary shared by the scout research agent:
// transcript messages, tool definitions, tool calls and results, chat
// options and the categorized errors returned by model providers.
//
// The interesting code lives in the subpackages:
//
//   - [github.com/spetersoncode/scout/agent]: the bounded tool-calling loop
//   - [github.com/spetersoncode/scout/tool]: the tool registry and built-in tools
//   - [github.com/spetersoncode/scout/client]: provider selection and defaults
//   - [github.com/spetersoncode/scout/mcp]: exposing and importing tools over MCP
//
// # Basic Usage
//
//	c, err := client.New(client.Config{Provider: scout.ProviderAnthropic})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg := tool.NewRegistry()
//	tool.MustRegister(reg, tool.NewSearch(os.Getenv("TAVILY_API_KEY")))
//
//	a := agent.New(c, reg)
//	result, err := a.Run(ctx, "What is the current population of Tokyo?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Answer)
//
// # Tool Definitions
//
// Tools are described to the model with a JSON Schema. SchemaFor derives one
// from a struct:
//
//	type QueryArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	t := scout.Tool{
//	    Name:        "lookup",
//	    Description: "Look something up",
//	    Parameters:  scout.SchemaFor[QueryArgs](),
//	}
package scout
