package domain

import "time"

// Conversation is a two-party message thread. The id is a UUID assigned when
// the first message between a pair of users is sent.
type Conversation struct {
	ID        string    `json:"id" db:"id"`
	UserAID   int       `json:"user_a_id" db:"user_a_id"`
	UserBID   int       `json:"user_b_id" db:"user_b_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Conversation) HasUser(userID int) bool {
	return c.UserAID == userID || c.UserBID == userID
}

func (c *Conversation) OtherUserID(userID int) (int, bool) {
	if c.UserAID == userID {
		return c.UserBID, true
	}
	if c.UserBID == userID {
		return c.UserAID, true
	}
	return 0, false
}

type Message struct {
	ID             int        `json:"id" db:"id"`
	ConversationID string     `json:"conversation_id" db:"conversation_id"`
	SenderID       int        `json:"sender_id" db:"sender_id"`
	Body           string     `json:"body" db:"body"`
	ReadAt         *time.Time `json:"read_at" db:"read_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
