package main

import (
	"os"

	"github.com/spetersoncode/scout/mcp"
	"github.com/spetersoncode/scout/tool"
)

// MCPCmd serves the built-in tools to MCP clients over stdio.
type MCPCmd struct {
	NoSearch bool `name:"no-search" help:"Do not expose the web search tool."`
}

func (c *MCPCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}

	// stdout carries the protocol.
	logger := newLogger(cfg, os.Stderr)

	searchKey := cfg.TavilyKey
	if c.NoSearch {
		searchKey = ""
	} else if searchKey == "" {
		logger.Warn("TAVILY_API_KEY not set, web search disabled")
	}

	registry := tool.NewRegistry()
	if err := registry.RegisterAll(tool.Builtins(searchKey, cfg.SearchOptions()...)...); err != nil {
		return err
	}

	logger.Info("serving tools over MCP stdio", "tools", registry.Names())
	return mcp.ServeStdio(registry,
		mcp.WithName("scout"),
		mcp.WithVersion(version()),
		mcp.WithLogger(logger),
	)
}
