// Package bot exposes the ledger as Telegram chat commands.
package bot

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SecretTokenHeader carries the secret_token given to setWebhook on every
// webhook request Telegram makes.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type Bot struct {
	api      *tgbotapi.BotAPI
	commands *Commands
	send     func(tgbotapi.Chattable) (tgbotapi.Message, error)
}

func New(token string, commands *Commands) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Bot{api: api, commands: commands, send: api.Send}, nil
}

func (b *Bot) UserName() string {
	return b.api.Self.UserName
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	slog.Info("Bot started", "username", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// SetWebhook registers url with Telegram for webhook delivery. Telegram
// echoes secret in SecretTokenHeader on each delivery.
func (b *Bot) SetWebhook(url, secret string) error {
	resp, err := b.api.MakeRequest("setWebhook", tgbotapi.Params{
		"url":          url,
		"secret_token": secret,
	})
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("set webhook: %s", resp.Description)
	}
	return nil
}

// WebhookHandler accepts updates pushed by Telegram. Requests without the
// registered secret are rejected before the body is read.
func (b *Bot) WebhookHandler(ctx context.Context, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(SecretTokenHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			slog.Warn("Rejected webhook request", "remote_addr", c.ClientIP())
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Error("Failed to parse update", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}
		b.HandleUpdate(ctx, update)
		c.Status(http.StatusOK)
	}
}

// HandleUpdate answers one message. Updates without a message are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID
	slog.Info("Message received", "user_id", userID, "text", update.Message.Text)

	msg := tgbotapi.NewMessage(chatID, b.commands.Handle(ctx, userID, update.Message.Text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.send(msg); err != nil {
		slog.Error("Failed to send reply", "error", err, "user_id", userID)
	}
}
