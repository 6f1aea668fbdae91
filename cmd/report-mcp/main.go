package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/config"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/extractor"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/tools"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"
)

const serverVersion = "1.0.0"

// report-mcp serves the blood test report reader over stdio. Stdout carries
// the protocol, so logs go to stderr.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLoggerTo(os.Stderr, cfg.LogLevel)

	reader, err := tools.NewReportReader(extractor.NewPDFLoader(), cfg.DefaultReportPath)
	if err != nil {
		logger.Fatal("Failed to create report reader", "error", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "blood-report-reader",
		Version: serverVersion,
	}, nil)
	tools.RegisterMCP(server, reader)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting MCP server", "default_report", cfg.DefaultReportPath)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Fatal("MCP server stopped", "error", err)
	}
}
