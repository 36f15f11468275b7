package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")

	ErrConnectionNotFound      = errors.New("connection not found")
	ErrConnectionAlreadyExists = errors.New("connection already exists")
	ErrCannotConnectSelf       = errors.New("cannot connect to yourself")
	ErrNotConnectionAddressee  = errors.New("not the addressee of this connection")

	ErrEventNotFound    = errors.New("event not found")
	ErrRSVPNotFound     = errors.New("rsvp not found")
	ErrAlreadyAttending = errors.New("already attending this event")

	ErrConversationNotFound  = errors.New("conversation not found")
	ErrNotConversationMember = errors.New("not a member of this conversation")
)
