package repository

import (
	"context"

	"github.com/villagehs/village-backend/internal/domain"
)

type MessageRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)
	GetConversationByUsers(ctx context.Context, userAID, userBID int) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int) ([]*domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error)
	MarkRead(ctx context.Context, conversationID string, readerID int) error
}
