// ABOUTME: Root Cobra command for the repbot CLI.
// ABOUTME: Opens config, storage, and the assistant via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/repbot/internal/assistant"
	"github.com/harperreed/repbot/internal/config"
	"github.com/harperreed/repbot/internal/llm"
	"github.com/harperreed/repbot/internal/storage"
)

var (
	cfg    *config.Config
	repo   *storage.DB
	asst   *assistant.Assistant
	logger *log.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "repbot",
	Short: "Natural-language workout logging assistant",
	Long: `Repbot is a workout logging assistant you talk to in plain English.

It uses a local LLM (via Ollama) to understand messages like:

  3 sets of bench press at 185 lbs, 10 reps
  same as last time at 190
  show my PRs
  undo that
  weighed in at 184 this morning

and turns them into structured workout data in a local SQLite database.

QUICK START:

  $ ollama pull llama3.2      # Pull the default model
  $ repbot seed               # Seed the exercise catalog and coaching knowledge
  $ repbot chat               # Talk to the assistant in your terminal

TELEGRAM:

  Set TELEGRAM_BOT_TOKEN and TELEGRAM_ALLOWED_USERS (comma-separated user ids),
  then run 'repbot bot'.

MCP INTEGRATION:

  Run 'repbot mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants:

  {
    "mcpServers": {
      "repbot": { "command": "repbot", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  Settings come from environment variables (a .env file is honored):

  REPBOT_DB_PATH         database path (default ~/.local/share/repbot/repbot.db)
  OLLAMA_URL             Ollama server (default http://localhost:11434)
  REPBOT_MODEL           model name (default llama3.2)
  REPBOT_TIMEZONE        reference timezone (default America/New_York)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		logger = log.New(os.Stderr)
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		repo, err = storage.Open(cfg.DBPath, cfg.Location())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		model := llm.NewClient(llm.ClientConfig{
			BaseURL:    cfg.OllamaURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		asst = assistant.New(repo, model, cfg.Location(), logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
