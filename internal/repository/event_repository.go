package repository

import (
	"context"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int) error
	// ListUpcoming returns one-off events starting inside [from, to] plus
	// all recurring events (whose occurrences the caller expands in memory).
	ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
}

type RSVPRepository interface {
	Create(ctx context.Context, rsvp *domain.RSVP) error
	GetByEventAndUser(ctx context.Context, eventID, userID int) (*domain.RSVP, error)
	UpdateStatus(ctx context.Context, id int, status domain.RSVPStatus) error
	CountGoing(ctx context.Context, eventID int) (int, error)
	// ListByEvent returns RSVPs ordered by creation time; waitlist position
	// is this ordering filtered to waitlisted rows.
	ListByEvent(ctx context.Context, eventID int) ([]*domain.RSVP, error)
	// FirstWaitlisted returns the earliest-created waitlisted RSVP for the
	// event, or domain.ErrRSVPNotFound.
	FirstWaitlisted(ctx context.Context, eventID int) (*domain.RSVP, error)
}
