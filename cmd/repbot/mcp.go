// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/repbot/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates via stdin/stdout and acts as the default user
(REPBOT_DEFAULT_USER_ID).

AVAILABLE TOOLS:

  send_message   Full natural-language pipeline (log, repeat, undo, stats, coaching)
  list_workouts  List recent workout batches with their ids
  get_prs        Heaviest set ever per exercise
  undo_workout   Delete a batch by id, or the most recent one`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(asst, cfg.DefaultUserID)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
