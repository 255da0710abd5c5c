package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vivekalabs/viveka"
	"github.com/vivekalabs/viveka/internal/adapters/mcp"
	"github.com/vivekalabs/viveka/internal/catalog"
	"github.com/vivekalabs/viveka/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the loan advisor as an MCP Server.
This lets AI agents (like Claude Desktop) drive the conversation, upload
documents and fetch sanction letters as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs must stay off Stdout so they never corrupt JSON-RPC.
		logger := logging.New(slog.LevelInfo)
		slog.SetDefault(logger)

		advisor, err := viveka.New(viveka.WithLogger(logger))
		if err != nil {
			log.Fatalf("Error initializing viveka: %v", err)
		}

		srv := mcp.NewServer(advisor, catalog.Default())

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			slog.Info("Starting Viveka MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Viveka MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
