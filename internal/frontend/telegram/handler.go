package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/marquee/internal/catalog"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	errorMsg        = "Could not load movies right now. Please try again."
	busyMsg         = "Still loading your previous request."
	welcomeMsg      = "Welcome to Marquee!\n" +
		"/popular - popular movies\n" +
		"/trending - trending today\n" +
		"/genres - movie genres"
	unknownMsg = "Unknown command. Try /popular, /trending or /genres."
)

// Bot commands.
const (
	cmdStart    = "start"
	cmdPopular  = "popular"
	cmdTrending = "trending"
	cmdGenres   = "genres"
)

// parseCommand returns the command name of text without the slash or bot mention,
// or "" if text is not a command.
func parseCommand(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text[1:])
	if len(name) == 0 {
		return ""
	}
	cmd, _, _ := strings.Cut(name[0], "@")
	return strings.ToLower(cmd)
}

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	switch cmd := parseCommand(msg.Text); cmd {
	case "":
		return
	case cmdStart:
		b.sendText(chatID, welcomeMsg)
	case cmdPopular, cmdTrending, cmdGenres:
		if !b.sessions.begin(userID) {
			b.sendText(chatID, busyMsg)
			return
		}
		defer b.sessions.end(userID)
		b.sendListing(ctx, chatID, cmd)
	default:
		b.sendText(chatID, unknownMsg)
	}
}

// sendListing fetches one listing and replies with it.
func (b *Bot) sendListing(ctx context.Context, chatID int64, cmd string) {
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.out.Send(typing) //nolint:errcheck // best-effort typing indicator

	logger := catalog.LoadLogger(b.logger).With(slog.Int64("chat_id", chatID))

	var (
		title, body string
		err         error
	)
	switch cmd {
	case cmdPopular:
		r := b.loader.Popular(ctx)
		catalog.LogResult(logger, r)
		title, body, err = "Popular movies", FormatMovies(r.Value), r.Err
	case cmdTrending:
		r := b.loader.Trending(ctx)
		catalog.LogResult(logger, r)
		title, body, err = "Trending today", FormatMovies(r.Value), r.Err
	case cmdGenres:
		r := b.loader.Genres(ctx)
		catalog.LogResult(logger, r)
		title, body, err = "Genres", FormatGenres(r.Value), r.Err
	}
	if err != nil {
		b.sendText(chatID, errorMsg)
		return
	}
	b.sendMarkdown(chatID, formatListing(title, body), title+"\n\n"+body)
}

// sendMarkdown sends a MarkdownV2 message, falling back to plain text.
func (b *Bot) sendMarkdown(chatID int64, markdown, plain string) {
	msg := tgbotapi.NewMessage(chatID, markdown)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendText(chatID, plain)
	}
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

