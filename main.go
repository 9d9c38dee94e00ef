package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"mcp-webtools-go/pkg/config"
	"mcp-webtools-go/pkg/searxng"
	"mcp-webtools-go/pkg/webfetch"
)

const (
	serverName    = "mcp-webtools-go"
	serverVersion = "0.1.0"
)

func main() {
	// stdout carries the MCP stdio transport, so all logging goes to stderr.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, relying on process environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Visit.TimeoutSecs) * time.Second

	searchOpts := []webfetch.Option{webfetch.WithUserAgent(cfg.Visit.UserAgent)}
	authUsername := os.Getenv("AUTH_USERNAME")
	authPassword := os.Getenv("AUTH_PASSWORD")
	switch {
	case authUsername != "" && authPassword != "":
		logger.Info().Msg("SearXNG basic authentication is configured")
		searchOpts = append(searchOpts, webfetch.WithBasicAuth(authUsername, authPassword))
	case authUsername != "" || authPassword != "":
		logger.Warn().Msg("partial SearXNG authentication found; both AUTH_USERNAME and AUTH_PASSWORD must be set")
	}

	searchFetcher := webfetch.NewClient(timeout, searchOpts...)
	visitFetcher := webfetch.NewClient(timeout, webfetch.WithUserAgent(cfg.Visit.UserAgent))
	searcher := searxng.NewClient(cfg.Search.BaseURL, searchFetcher, logger)
	handlers := newToolHandlers(cfg, searcher, visitFetcher, logger)

	server := mcp.NewServer(serverName, serverVersion, &mcp.ServerOptions{
		Instructions: "This server provides web search via SearXNG and readable-content extraction from web pages.",
	})
	server.AddTools(
		mcp.NewServerTool(
			"web_search",
			"Execute a web search against the configured SearXNG instance and return titles, summaries and URLs.",
			handlers.webSearch,
		),
		mcp.NewServerTool(
			"visit_page",
			"Fetch a URL and return its readable article text. Set return_raw for the unprocessed body.",
			handlers.visitPage,
		),
	)

	logger.Info().
		Str("version", serverVersion).
		Str("instance", cfg.Search.BaseURL).
		Msg("starting MCP server")

	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		if err == context.Canceled || strings.Contains(err.Error(), "connection closed") || strings.Contains(err.Error(), "io: read/write on closed pipe") {
			logger.Info().Err(err).Msg("server shutdown initiated")
		} else {
			logger.Fatal().Err(err).Msg("MCP server error")
		}
	}

	logger.Info().Msg("server has shut down")
}
