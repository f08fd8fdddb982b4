package main

import (
	"github.com/rs/zerolog/log"

	"github.com/benreichman/SearXNG-MCP-Server/internal/domain/websearch"
	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/config"
	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/logger"
	_ "github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/metrics" // Register Prometheus metrics
	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/searxng"
	"github.com/benreichman/SearXNG-MCP-Server/internal/infrastructure/webpage"
	"github.com/benreichman/SearXNG-MCP-Server/internal/interfaces/httpserver"
	"github.com/benreichman/SearXNG-MCP-Server/internal/interfaces/httpserver/routes/mcp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("searxng_url", cfg.SearxngURL).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SearXNG MCP server")

	// Initialize infrastructure
	aggregator := searxng.NewClient(cfg.SearxngSearchURL(), cfg.SearchEngines, cfg.RequestTimeout())
	fetcher := webpage.NewFetcher(cfg.RequestTimeout())
	service := websearch.NewService(aggregator, fetcher, cfg.MaxWords)

	// Initialize protocol routes
	dispatcher := mcp.NewDispatcher(service, cfg.DefaultMaxResults)
	mcpRoute := mcp.NewMCPRoute(dispatcher)

	// Start HTTP server
	server := httpserver.NewHTTPServer(cfg, mcpRoute)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
