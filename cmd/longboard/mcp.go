package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/longboard"
	"github.com/aretw0/longboard/internal/cli"
	"github.com/aretw0/longboard/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts longboard as an MCP Server.
This allows AI agents to inspect documents, move the preview and simulate drags as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()
		logger := engine.Logger()

		if err := engine.OpenAll(cmd.Context()); err != nil {
			return err
		}
		if ref, _ := cmd.Flags().GetString("doc"); ref != "" {
			glyph, _ := cmd.Flags().GetString("glyph")
			if _, err := cli.ResolveDocument(cmd.Context(), engine, ref, glyph); err != nil {
				return err
			}
		}

		srv := mcp.NewServer(engine.Manager(), strings.TrimSpace(longboard.Version), mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(cmd.ErrOrStderr())
			logger.Info("Starting Longboard MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			addr := fmt.Sprintf(":%d", port)
			baseURL := fmt.Sprintf("http://localhost:%d", port)
			if err := srv.ServeSSE(sigCtx, addr, baseURL); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
