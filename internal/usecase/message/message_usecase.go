package message

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

const defaultPageSize = 50

type MessageUseCase struct {
	msgRepo     repository.MessageRepository
	connRepo    repository.ConnectionRepository
	profileRepo repository.ProfileRepository
	log         *slog.Logger
}

func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	connRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	log *slog.Logger,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo:     msgRepo,
		connRepo:    connRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

type SendRequest struct {
	RecipientID int    `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required,max=4000"`
}

// ConversationSummary pairs a thread with the other party's profile for
// inbox rendering.
type ConversationSummary struct {
	Conversation *domain.Conversation `json:"conversation"`
	OtherUser    *domain.Profile      `json:"other_user,omitempty"`
}

// Send delivers a message, creating the conversation on first contact.
// Messaging is restricted to accepted connections.
func (uc *MessageUseCase) Send(ctx context.Context, senderID int, req *SendRequest) (*domain.Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, domain.ErrInvalidInput
	}
	if senderID == req.RecipientID {
		return nil, domain.ErrInvalidInput
	}

	info, err := uc.connRepo.GetByUsers(ctx, senderID, req.RecipientID)
	if err != nil {
		if err == domain.ErrConnectionNotFound {
			return nil, domain.ErrNotConversationMember
		}
		return nil, fmt.Errorf("failed to check connection: %w", err)
	}
	if info.Status != domain.ConnectionAccepted {
		return nil, domain.ErrNotConversationMember
	}

	conv, err := uc.msgRepo.GetConversationByUsers(ctx, senderID, req.RecipientID)
	if err != nil {
		if err != domain.ErrConversationNotFound {
			return nil, err
		}
		conv = &domain.Conversation{
			ID:      uuid.NewString(),
			UserAID: senderID,
			UserBID: req.RecipientID,
		}
		if err := uc.msgRepo.CreateConversation(ctx, conv); err != nil {
			return nil, err
		}
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := uc.msgRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListConversations returns the user's threads, most recent activity first,
// enriched with the other party's profile where one exists.
func (uc *MessageUseCase) ListConversations(ctx context.Context, userID int) ([]*ConversationSummary, error) {
	convs, err := uc.msgRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := &ConversationSummary{Conversation: conv}
		if otherID, ok := conv.OtherUserID(userID); ok {
			profile, err := uc.profileRepo.GetByUserID(ctx, otherID)
			if err == nil {
				summary.OtherUser = profile
			} else if err != domain.ErrProfileNotFound {
				uc.log.Warn("failed to load conversation profile", "user_id", otherID, "error", err)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListMessages returns a page of messages in a thread the user belongs to,
// marking them read as a side effect.
func (uc *MessageUseCase) ListMessages(ctx context.Context, conversationID string, userID, limit, offset int) ([]*domain.Message, error) {
	conv, err := uc.msgRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasUser(userID) {
		return nil, domain.ErrNotConversationMember
	}

	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	msgs, err := uc.msgRepo.ListMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := uc.msgRepo.MarkRead(ctx, conversationID, userID); err != nil {
		uc.log.Warn("failed to mark messages read", "conversation_id", conversationID, "error", err)
	}
	return msgs, nil
}
