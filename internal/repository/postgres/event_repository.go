package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			host_user_id, title, description, location_name, location_lat, location_lon,
			starts_at, capacity, recurrence_freq, recurrence_ends
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		event.HostUserID, event.Title, event.Description,
		event.LocationName, event.LocationLat, event.LocationLon,
		event.StartsAt, event.Capacity, event.RecurrenceFreq, event.RecurrenceEnds,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	var event domain.Event
	query := `SELECT * FROM events WHERE id = $1`
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, location_name = $3,
		    location_lat = $4, location_lon = $5, starts_at = $6,
		    capacity = $7, recurrence_freq = $8, recurrence_ends = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		event.Title, event.Description, event.LocationName,
		event.LocationLat, event.LocationLon, event.StartsAt,
		event.Capacity, event.RecurrenceFreq, event.RecurrenceEnds,
		event.ID,
	).Scan(&event.UpdatedAt)
}

func (r *eventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	var events []*domain.Event
	query := `
		SELECT * FROM events
		WHERE (recurrence_freq <> '')
		   OR (starts_at BETWEEN $1 AND $2)
		ORDER BY starts_at
	`
	err := r.db.SelectContext(ctx, &events, query, from, to)
	return events, err
}

type rsvpRepository struct {
	db *sqlx.DB
}

func NewRSVPRepository(db *sqlx.DB) repository.RSVPRepository {
	return &rsvpRepository{db: db}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		rsvp.EventID, rsvp.UserID, rsvp.Status,
	).Scan(&rsvp.ID, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyAttending
		}
		return err
	}
	return nil
}

func (r *rsvpRepository) GetByEventAndUser(ctx context.Context, eventID, userID int) (*domain.RSVP, error) {
	var rsvp domain.RSVP
	query := `SELECT * FROM rsvps WHERE event_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &rsvp, query, eventID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *rsvpRepository) UpdateStatus(ctx context.Context, id int, status domain.RSVPStatus) error {
	query := `UPDATE rsvps SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrRSVPNotFound
	}
	return nil
}

func (r *rsvpRepository) CountGoing(ctx context.Context, eventID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND status = 'going'`
	err := r.db.GetContext(ctx, &count, query, eventID)
	return count, err
}

func (r *rsvpRepository) ListByEvent(ctx context.Context, eventID int) ([]*domain.RSVP, error) {
	var rsvps []*domain.RSVP
	query := `SELECT * FROM rsvps WHERE event_id = $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &rsvps, query, eventID)
	return rsvps, err
}

func (r *rsvpRepository) FirstWaitlisted(ctx context.Context, eventID int) (*domain.RSVP, error) {
	var rsvp domain.RSVP
	query := `
		SELECT * FROM rsvps
		WHERE event_id = $1 AND status = 'waitlisted'
		ORDER BY created_at
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &rsvp, query, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}
