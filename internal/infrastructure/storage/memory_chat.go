package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/domain/repository"
)

type memoryChatRepository struct {
	mu     sync.RWMutex
	convs  []entity.Conversation
	nextID int64
}

// NewMemoryChatRepository in-memory chat log
func NewMemoryChatRepository() repository.ChatRepository {
	return &memoryChatRepository{nextID: 1}
}

// Append stores the exchange and assigns the next ID
func (m *memoryChatRepository) Append(ctx context.Context, conv entity.Conversation) (entity.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conv.Timestamp.IsZero() {
		conv.Timestamp = time.Now()
	}
	conv.ID = m.nextID
	m.nextID++
	m.convs = append(m.convs, conv)
	return conv, nil
}

// ListByUser returns the user's exchanges, newest first
func (m *memoryChatRepository) ListByUser(ctx context.Context, userID string) ([]entity.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]entity.Conversation, 0)
	for _, c := range m.convs {
		if c.UserID == userID {
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID > result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}
