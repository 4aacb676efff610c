package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"coursecraft/internal/adapters/httpapi"
	mcpadapter "coursecraft/internal/adapters/mcp"
	"coursecraft/internal/adapters/sqlite"
	"coursecraft/internal/config"
	"coursecraft/internal/ports"
)

func main() {
	storeFlag := flag.String("store", "", "backend: local or remote (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("coursecraft-mcp: %v", err)
	}
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}

	var store ports.CourseStore
	if cfg.Store == config.StoreRemote {
		store = httpapi.New(cfg.APIURL, cfg.APIToken)
	} else {
		local, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("coursecraft-mcp: %v", err)
		}
		defer local.Close()
		store = local
	}

	mcpServer := server.NewMCPServer(
		"coursecraft-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("coursecraft-mcp: %v", err)
	}
}
