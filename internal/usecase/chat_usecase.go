package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
	"github.com/Arshath015/Ekonomi/internal/metrics"
)

// PlaceholderReply stored and returned when the model produces no text
const PlaceholderReply = "Sorry, I could not generate a response."

// ChatUseCase chat business logic
type ChatUseCase interface {
	ProcessMessage(ctx context.Context, userID, message string) (*entity.ChatReply, error)
	GetConversations(ctx context.Context, userID string) ([]entity.Conversation, error)
}

type chatUseCase struct {
	aiRepo   repository.AIRepository
	chatRepo repository.ChatRepository
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewChatUseCase creates a ChatUseCase
func NewChatUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	m *metrics.Metrics,
) ChatUseCase {
	return &chatUseCase{
		aiRepo:   aiRepo,
		chatRepo: chatRepo,
		metrics:  m,
		now:      time.Now,
	}
}

// ProcessMessage asks the model, logs the exchange under a fresh
// conversation ID and returns the reply
func (u *chatUseCase) ProcessMessage(ctx context.Context, userID, message string) (*entity.ChatReply, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", entity.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", entity.ErrInvalidInput)
	}

	conversationID := uuid.New().String()

	response, err := u.aiRepo.GenerateResponse(ctx, message)
	u.metrics.Upstream(metrics.UpstreamLLM, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamUnavailable, err)
	}

	placeholder := strings.TrimSpace(response) == ""
	if placeholder {
		slog.Warn("model returned no content", "user_id", userID, "conversation_id", conversationID)
		response = PlaceholderReply
	}

	// Original text is stored, not anything derived from it
	_, err = u.chatRepo.Append(ctx, entity.Conversation{
		UserID:         userID,
		ConversationID: conversationID,
		UserMessage:    message,
		AIResponse:     response,
		Timestamp:      u.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	u.metrics.ChatReply(placeholder)

	return &entity.ChatReply{
		ConversationID: conversationID,
		Response:       response,
	}, nil
}

// GetConversations returns the user's exchanges, newest first
func (u *chatUseCase) GetConversations(ctx context.Context, userID string) ([]entity.Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", entity.ErrInvalidInput)
	}
	return u.chatRepo.ListByUser(ctx, userID)
}
