// Package mcp bridges scout tool registries and the Model Context Protocol.
//
//   - NewServer exposes a [tool.Registry] to MCP clients, so the built-in
//     tools can be used from any MCP host.
//   - RemoteRegistry connects to an MCP server and imports its tools into a
//     [tool.Registry] before a run starts.
//
// # Exposing Tools
//
//	registry := tool.NewRegistry()
//	tool.MustRegisterAll(registry, tool.Builtins(os.Getenv("TAVILY_API_KEY")))
//
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
//
// # Importing Remote Tools
//
//	remote, err := mcp.Dial(ctx, "npx -y @modelcontextprotocol/server-everything")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	if err := remote.RegisterInto(registry); err != nil {
//	    log.Fatal(err)
//	}
package mcp
