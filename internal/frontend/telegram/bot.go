package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/marquee/internal/catalog"
	"github.com/vadimtrunov/marquee/internal/core"
)

// sender is the part of the Bot API used to reply.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot is the Telegram frontend for the movie listings.
type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	loader   *catalog.Loader
	sessions *sessionManager
	logger   *slog.Logger
}

// compile-time check.
var _ core.Frontend = (*Bot)(nil)

// New creates a new Telegram Bot.
func New(token string, allowedUserIDs []int64, loader *catalog.Loader, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		api:      api,
		out:      api,
		loader:   loader,
		sessions: newSessionManager(allowedUserIDs),
		logger:   logger,
	}, nil
}

// Name returns the frontend name.
func (b *Bot) Name() string { return "telegram" }

// Start starts the long-polling loop. It blocks until ctx is canceled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("telegram bot started",
		slog.String("username", b.api.Self.UserName),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				go b.handleMessage(ctx, update.Message)
			}
		}
	}
}

// Stop is a no-op; Start returns when ctx is canceled.
func (b *Bot) Stop(_ context.Context) error {
	return nil
}

// SendMessage sends a text message to a Telegram user.
func (b *Bot) SendMessage(_ context.Context, userID, message string) error {
	var chatID int64
	if _, err := fmt.Sscanf(userID, "%d", &chatID); err != nil {
		return fmt.Errorf("invalid user ID %q: %w", userID, err)
	}

	_, err := b.out.Send(tgbotapi.NewMessage(chatID, message))
	return err
}
