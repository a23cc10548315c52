package repository

import (
	"context"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
)

// ChatRepository append-only conversation log
type ChatRepository interface {
	// Append stores a new exchange and returns it with its assigned ID
	Append(ctx context.Context, conv entity.Conversation) (entity.Conversation, error)

	// ListByUser returns every exchange of the user, newest first
	ListByUser(ctx context.Context, userID string) ([]entity.Conversation, error)
}
