package domain

import "time"

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

type Connection struct {
	ID          int              `json:"id" db:"id"`
	RequesterID int              `json:"requester_id" db:"requester_id"`
	AddresseeID int              `json:"addressee_id" db:"addressee_id"`
	Status      ConnectionStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	RespondedAt *time.Time       `json:"responded_at" db:"responded_at"`
}

func (c *Connection) HasUser(userID int) bool {
	return c.RequesterID == userID || c.AddresseeID == userID
}

func (c *Connection) OtherUserID(userID int) (int, bool) {
	if c.RequesterID == userID {
		return c.AddresseeID, true
	}
	if c.AddresseeID == userID {
		return c.RequesterID, true
	}
	return 0, false
}

// ConnectionInfo is one side's view of a connection, keyed by the other
// party's user id in discovery's exclusion map.
type ConnectionInfo struct {
	Status      ConnectionStatus `json:"status"`
	IsRequester bool             `json:"is_requester"`
}
