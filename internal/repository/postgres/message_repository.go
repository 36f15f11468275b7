package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_a_id, user_b_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		conv.ID, conv.UserAID, conv.UserBID,
	).Scan(&conv.CreatedAt, &conv.UpdatedAt)
}

func (r *messageRepository) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE id = $1`
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *messageRepository) GetConversationByUsers(ctx context.Context, userAID, userBID int) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `
		SELECT * FROM conversations
		WHERE (user_a_id = $1 AND user_b_id = $2)
		   OR (user_a_id = $2 AND user_b_id = $1)
	`
	if err := r.db.GetContext(ctx, &conv, query, userAID, userBID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *messageRepository) ListConversations(ctx context.Context, userID int) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	query := `
		SELECT * FROM conversations
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY updated_at DESC
	`
	err := r.db.SelectContext(ctx, &convs, query, userID)
	return convs, err
}

func (r *messageRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(
		ctx, query,
		msg.ConversationID, msg.SenderID, msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return err
	}

	// Bump the conversation so listings sort by latest activity.
	bump := `UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.ExecContext(ctx, bump, msg.ConversationID)
	return err
}

func (r *messageRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*domain.Message, error) {
	var msgs []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &msgs, query, conversationID, limit, offset)
	return msgs, err
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID string, readerID int) error {
	query := `
		UPDATE messages
		SET read_at = CURRENT_TIMESTAMP
		WHERE conversation_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, conversationID, readerID)
	return err
}
