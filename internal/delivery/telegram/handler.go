// Package telegram serves the chat and product use cases as a Telegram bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/usecase"
)

const (
	// maxMessageLen Telegram's limit for a single text message
	maxMessageLen = 4096

	productPreviewLimit = 10
	historyPreviewLimit = 10
)

// botAPI the subset of *tgbotapi.BotAPI the handler uses
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot            botAPI
	username       string
	chatUseCase    usecase.ChatUseCase
	productUseCase usecase.ProductUseCase
}

// NewBotHandler connects to the Bot API with token
func NewBotHandler(
	token string,
	chatUseCase usecase.ChatUseCase,
	productUseCase usecase.ProductUseCase,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return newBotHandler(bot, bot.Self.UserName, chatUseCase, productUseCase), nil
}

func newBotHandler(bot botAPI, username string, chatUseCase usecase.ChatUseCase, productUseCase usecase.ProductUseCase) *BotHandler {
	return &BotHandler{
		bot:            bot,
		username:       username,
		chatUseCase:    chatUseCase,
		productUseCase: productUseCase,
	}
}

// Start long-polls updates until ctx is cancelled
func (h *BotHandler) Start(ctx context.Context) error {
	slog.Info("telegram bot started", "username", h.username)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			slog.Info("telegram bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage routes commands, everything else goes to the model
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if strings.TrimSpace(message.Text) != "" {
		h.handleTextMessage(ctx, message)
	}
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.sendMessage(message.Chat.ID, welcomeMessage)
	case "help":
		h.sendMessage(message.Chat.ID, helpMessage)
	case "product":
		h.handleProductCommand(ctx, message)
	case "export":
		h.handleExportCommand(ctx, message)
	case "history":
		h.handleHistoryCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Unknown command. See /help.")
	}
}

func (h *BotHandler) handleTextMessage(ctx context.Context, message *tgbotapi.Message) {
	reply, err := h.chatUseCase.ProcessMessage(ctx, userKey(message.From), message.Text)
	if err != nil {
		slog.Error("chat failed", "user_id", message.From.ID, "error", err)
		h.sendMessage(message.Chat.ID, errorText(err))
		return
	}
	h.sendMessage(message.Chat.ID, reply.Response)
}

func (h *BotHandler) handleProductCommand(ctx context.Context, message *tgbotapi.Message) {
	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		h.sendMessage(message.Chat.ID, "Usage: /product <product name>")
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("Searching for %q...", name))

	products, err := h.productUseCase.FetchProductDetails(ctx, name)
	if err != nil {
		slog.Error("product lookup failed", "product", name, "error", err)
		h.sendMessage(message.Chat.ID, errorText(err))
		return
	}

	h.sendMessage(message.Chat.ID, buildProductPreview(name, products, productPreviewLimit))
}

func (h *BotHandler) handleExportCommand(ctx context.Context, message *tgbotapi.Message) {
	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		h.sendMessage(message.Chat.ID, "Usage: /export <product name>")
		return
	}

	export, err := h.productUseCase.ExportProducts(ctx, name)
	if err != nil {
		slog.Error("product export failed", "product", name, "error", err)
		h.sendMessage(message.Chat.ID, errorText(err))
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  export.Filename,
		Bytes: export.Data,
	})
	doc.Caption = fmt.Sprintf("Results for %q", name)
	if _, err := h.bot.Send(doc); err != nil {
		slog.Error("failed to send document", "chat_id", message.Chat.ID, "error", err)
	}
}

func (h *BotHandler) handleHistoryCommand(ctx context.Context, message *tgbotapi.Message) {
	history, err := h.chatUseCase.GetConversations(ctx, userKey(message.From))
	if err != nil {
		slog.Error("history lookup failed", "user_id", message.From.ID, "error", err)
		h.sendMessage(message.Chat.ID, errorText(err))
		return
	}

	if len(history) == 0 {
		h.sendMessage(message.Chat.ID, "Your chat history is empty.")
		return
	}

	h.sendMessage(message.Chat.ID, buildHistoryDigest(history, historyPreviewLimit))
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncateString(text, maxMessageLen))
	if _, err := h.bot.Send(msg); err != nil {
		slog.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

// userKey conversation log key for a Telegram account
func userKey(u *tgbotapi.User) string {
	return strconv.FormatInt(u.ID, 10)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return "Please check your request and try again."
	case errors.Is(err, entity.ErrUpstreamUnavailable):
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong. Please try again later."
	}
}
