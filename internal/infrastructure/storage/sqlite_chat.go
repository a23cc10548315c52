package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
)

type sqliteChatRepository struct {
	db *sql.DB
}

// NewSQLiteChatRepository conversations table backed chat log
func NewSQLiteChatRepository(db *sql.DB) repository.ChatRepository {
	return &sqliteChatRepository{db: db}
}

// Append inserts one exchange
func (s *sqliteChatRepository) Append(ctx context.Context, conv entity.Conversation) (entity.Conversation, error) {
	if conv.Timestamp.IsZero() {
		conv.Timestamp = time.Now()
	}
	conv.Timestamp = conv.Timestamp.UTC()

	res, err := s.db.ExecContext(ctx, `
INSERT INTO conversations (user_id, conversation_id, user_message, ai_response, timestamp)
VALUES (?, ?, ?, ?, ?)`,
		conv.UserID, conv.ConversationID, conv.UserMessage, conv.AIResponse, conv.Timestamp)
	if err != nil {
		return entity.Conversation{}, fmt.Errorf("%w: append conversation: %w", entity.ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entity.Conversation{}, fmt.Errorf("%w: conversation id: %w", entity.ErrStorage, err)
	}
	conv.ID = id
	return conv, nil
}

// ListByUser returns the user's exchanges, newest first
func (s *sqliteChatRepository) ListByUser(ctx context.Context, userID string) ([]entity.Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, conversation_id, user_message, ai_response, timestamp
FROM conversations
WHERE user_id = ?
ORDER BY timestamp DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list conversations: %w", entity.ErrStorage, err)
	}
	defer rows.Close()

	convs := make([]entity.Conversation, 0)
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.ConversationID, &c.UserMessage, &c.AIResponse, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan conversation: %w", entity.ErrStorage, err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list conversations: %w", entity.ErrStorage, err)
	}
	return convs, nil
}
