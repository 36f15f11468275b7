package event

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/metrics"
	"github.com/villagehs/village-backend/internal/repository"
)

type EventUseCase struct {
	eventRepo repository.EventRepository
	rsvpRepo  repository.RSVPRepository
	log       *slog.Logger
}

func NewEventUseCase(
	eventRepo repository.EventRepository,
	rsvpRepo repository.RSVPRepository,
	log *slog.Logger,
) *EventUseCase {
	return &EventUseCase{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		log:       log,
	}
}

// CreateEventRequest carries a new event, optionally recurring.
type CreateEventRequest struct {
	Title          string   `json:"title" binding:"required,min=2,max=200"`
	Description    *string  `json:"description" binding:"omitempty,max=2000"`
	LocationName   *string  `json:"location_name" binding:"omitempty,max=100"`
	LocationLat    *float64 `json:"location_lat" binding:"omitempty,min=-90,max=90"`
	LocationLon    *float64 `json:"location_lon" binding:"omitempty,min=-180,max=180"`
	StartsAt       string   `json:"starts_at" binding:"required"` // RFC 3339
	Capacity       int      `json:"capacity" binding:"omitempty,min=0,max=10000"`
	RecurrenceFreq string   `json:"recurrence_freq" binding:"omitempty,oneof=weekly fortnightly monthly"`
	RecurrenceEnds *string  `json:"recurrence_ends"` // RFC 3339
}

func (uc *EventUseCase) CreateEvent(ctx context.Context, hostUserID int, req *CreateEventRequest) (*domain.Event, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	ev := &domain.Event{
		HostUserID:     hostUserID,
		Title:          req.Title,
		Description:    req.Description,
		LocationName:   req.LocationName,
		LocationLat:    req.LocationLat,
		LocationLon:    req.LocationLon,
		StartsAt:       startsAt,
		Capacity:       req.Capacity,
		RecurrenceFreq: domain.RecurrenceFreq(req.RecurrenceFreq),
	}

	if req.RecurrenceEnds != nil {
		ends, err := time.Parse(time.RFC3339, *req.RecurrenceEnds)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		ev.RecurrenceEnds = &ends
	}

	if err := uc.eventRepo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return ev, nil
}

// ListCalendar returns upcoming occurrences inside the 90-day window:
// persisted events merged with derived occurrences expanded from recurring
// rules, ordered by date.
func (uc *EventUseCase) ListCalendar(ctx context.Context, now time.Time) ([]domain.EventOccurrence, error) {
	windowEnd := now.Add(DefaultWindow)

	events, err := uc.eventRepo.ListUpcoming(ctx, now, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var occurrences []domain.EventOccurrence
	for _, ev := range events {
		if !ev.StartsAt.Before(today) && !ev.StartsAt.After(windowEnd) {
			occurrences = append(occurrences, domain.EventOccurrence{
				Event:    *ev,
				OccursAt: ev.StartsAt,
			})
		}
		occurrences = append(occurrences, ExpandOccurrences(ev, now, windowEnd)...)
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].OccursAt.Before(occurrences[j].OccursAt)
	})
	return occurrences, nil
}

// RSVPResponse reports the attendance outcome, including whether the user
// landed on the waitlist.
type RSVPResponse struct {
	RSVP       *domain.RSVP `json:"rsvp"`
	Waitlisted bool         `json:"waitlisted"`
}

// RSVP registers attendance. When the event has a capacity and it is full,
// the user is waitlisted in FIFO order instead.
func (uc *EventUseCase) RSVP(ctx context.Context, eventID, userID int) (*RSVPResponse, error) {
	ev, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.rsvpRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil && err != domain.ErrRSVPNotFound {
		return nil, fmt.Errorf("failed to check existing rsvp: %w", err)
	}
	if existing != nil && existing.Status != domain.RSVPCancelled {
		return nil, domain.ErrAlreadyAttending
	}

	status := domain.RSVPGoing
	if ev.Capacity > 0 {
		going, err := uc.rsvpRepo.CountGoing(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attendees: %w", err)
		}
		if going >= ev.Capacity {
			status = domain.RSVPWaitlisted
		}
	}

	if existing != nil {
		// Re-joining after a cancellation reuses the row; the new created
		// order is effectively the update time, which is fine for FIFO.
		if err := uc.rsvpRepo.UpdateStatus(ctx, existing.ID, status); err != nil {
			return nil, err
		}
		existing.Status = status
		metrics.RSVPsTotal.WithLabelValues(string(status)).Inc()
		return &RSVPResponse{RSVP: existing, Waitlisted: status == domain.RSVPWaitlisted}, nil
	}

	rsvp := &domain.RSVP{EventID: eventID, UserID: userID, Status: status}
	if err := uc.rsvpRepo.Create(ctx, rsvp); err != nil {
		return nil, err
	}
	metrics.RSVPsTotal.WithLabelValues(string(status)).Inc()
	return &RSVPResponse{RSVP: rsvp, Waitlisted: status == domain.RSVPWaitlisted}, nil
}

// CancelRSVP withdraws attendance and, when a "going" spot frees up under a
// capacity limit, promotes the earliest waitlisted attendee.
func (uc *EventUseCase) CancelRSVP(ctx context.Context, eventID, userID int) error {
	ev, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	rsvp, err := uc.rsvpRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if rsvp.Status == domain.RSVPCancelled {
		return domain.ErrRSVPNotFound
	}

	wasGoing := rsvp.Status == domain.RSVPGoing
	if err := uc.rsvpRepo.UpdateStatus(ctx, rsvp.ID, domain.RSVPCancelled); err != nil {
		return err
	}
	metrics.RSVPsTotal.WithLabelValues(string(domain.RSVPCancelled)).Inc()

	if wasGoing && ev.Capacity > 0 {
		uc.promoteFromWaitlist(ctx, ev)
	}
	return nil
}

// promoteFromWaitlist moves the earliest waitlisted attendee to "going"
// while capacity allows. Best effort: promotion failures are logged, not
// returned, since the cancellation itself already succeeded.
func (uc *EventUseCase) promoteFromWaitlist(ctx context.Context, ev *domain.Event) {
	going, err := uc.rsvpRepo.CountGoing(ctx, ev.ID)
	if err != nil {
		uc.log.Error("waitlist promotion: count failed", "event_id", ev.ID, "error", err)
		return
	}
	for going < ev.Capacity {
		next, err := uc.rsvpRepo.FirstWaitlisted(ctx, ev.ID)
		if err == domain.ErrRSVPNotFound {
			return
		}
		if err != nil {
			uc.log.Error("waitlist promotion: lookup failed", "event_id", ev.ID, "error", err)
			return
		}
		if err := uc.rsvpRepo.UpdateStatus(ctx, next.ID, domain.RSVPGoing); err != nil {
			uc.log.Error("waitlist promotion: update failed", "event_id", ev.ID, "rsvp_id", next.ID, "error", err)
			return
		}
		uc.log.Info("promoted from waitlist", "event_id", ev.ID, "user_id", next.UserID)
		going++
	}
}

// Attendees returns the RSVPs for an event in creation order; waitlist
// position is the order of the waitlisted entries.
func (uc *EventUseCase) Attendees(ctx context.Context, eventID int) ([]*domain.RSVP, error) {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return uc.rsvpRepo.ListByEvent(ctx, eventID)
}
