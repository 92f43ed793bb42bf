// ABOUTME: Interactive terminal chat with the assistant.
// ABOUTME: Reads lines from stdin and prints replies until EOF or /quit.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in your terminal",
	Long: `Start an interactive chat session with the assistant.

Type messages as you would to a coach:

  > 3 sets of bench press at 185 lbs, 10 reps
  > show my PRs
  > what should I do for legs tomorrow?

Exit with /quit, Ctrl-D, or Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID := cfg.DefaultUserID

		prompt := color.New(color.FgCyan, color.Bold)
		faint := color.New(color.Faint)

		faint.Println("repbot chat. /quit to exit.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			prompt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "/quit" || line == "/exit" {
				return nil
			}

			reply, err := asst.Process(ctx, userID, line)
			if err != nil {
				color.Red("error: %v", err)
				continue
			}
			fmt.Println(reply)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
