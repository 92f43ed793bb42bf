// ABOUTME: CLI command for running the Telegram bot.
// ABOUTME: Long-polls until interrupted.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/repbot/internal/bot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Run the assistant as a Telegram bot.

Requires TELEGRAM_BOT_TOKEN. Only users listed in TELEGRAM_ALLOWED_USERS
(comma-separated Telegram user ids) may talk to the bot; everyone else is
refused. Each allowed user gets their own workout history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bot.New(cfg, asst, logger)
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

		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
