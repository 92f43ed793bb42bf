// ABOUTME: Telegram transport: long-polls updates and routes messages to the assistant.
// ABOUTME: An allowlist gates access; unknown users get a polite refusal.
package bot

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/harperreed/repbot/internal/assistant"
	"github.com/harperreed/repbot/internal/config"
)

const pollTimeout = 30

const (
	errorReply  = "Couldn't process that. Try rephrasing, or send /help."
	deniedReply = "Sorry, this bot is private."
	helpReply   = "Tell me about your workouts in plain English.\n\n" +
		"Examples:\n" +
		"  3 sets of bench press at 185 lbs, 10 reps\n" +
		"  same as last time at 190\n" +
		"  show my PRs\n" +
		"  undo that\n" +
		"  weighed in at 184 this morning"
)

// Bot wraps the Telegram API and the assistant it fronts.
type Bot struct {
	api       *tgbotapi.BotAPI
	assistant *assistant.Assistant
	cfg       *config.Config
	logger    *log.Logger
}

// New creates a Bot from a token in cfg.
func New(cfg *config.Config, a *assistant.Assistant, logger *log.Logger) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Bot{api: api, assistant: a, cfg: cfg, logger: logger}, nil
}

// Run long-polls for updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", "account", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	if !b.cfg.Allowed(userID) {
		b.logger.Warn("denied message from unknown user", "user", userID)
		b.reply(msg, deniedReply)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	reply, err := b.assistant.Process(ctx, userID, msg.Text)
	if err != nil {
		b.logger.Error("message handling failed", "user", userID, "err", err)
		b.reply(msg, errorReply)
		return
	}
	b.reply(msg, reply)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.reply(msg, helpReply)
	default:
		b.reply(msg, "Unknown command. Send /help.")
	}
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(out); err != nil {
		b.logger.Error("send reply failed", "chat", msg.Chat.ID, "err", err)
	}
}
