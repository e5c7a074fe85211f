package main

import (
	"context"
	"fmt"

	"github.com/aretw0/mindbuffer/internal/cli"
	"github.com/aretw0/mindbuffer/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the rescue flow as MCP tools so an agent can guide a session.

Supported transports:
- stdio (default): JSON-RPC over standard input and output.
- sse: Server-Sent Events over HTTP on --addr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		if transport != "stdio" && transport != "sse" {
			return fmt.Errorf("unknown transport %q: supported are stdio and sse", transport)
		}

		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		coach, err := cli.NewCoach(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(sigCtx))

		srv := mcp.NewServer(coach, mcp.WithLogger(logger))
		if transport == "stdio" {
			// Logs go to stderr; stdout carries protocol messages only.
			logger.Info("starting MCP server (stdio)", "storage", cfg.Storage.Backend)
			return srv.ServeStdio(sigCtx, cmd.InOrStdin(), cmd.OutOrStdout())
		}

		baseURL, _ := cmd.Flags().GetString("base-url")
		if baseURL == "" {
			baseURL = "http://localhost" + addr
		}
		if err := srv.ServeSSE(sigCtx, addr, baseURL); err != nil {
			return err
		}
		logger.Info("MCP server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol: stdio or sse")
	mcpCmd.Flags().String("addr", ":8081", "Listen address (sse only)")
	mcpCmd.Flags().String("base-url", "", "Public base URL announced to SSE clients (default http://localhost<addr>)")
}
