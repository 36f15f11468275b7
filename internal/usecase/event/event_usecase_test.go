package event

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
)

// In-memory repositories for exercising the RSVP/waitlist flow.

type fakeEventRepo struct {
	events map[int]*domain.Event
}

func (r *fakeEventRepo) Create(_ context.Context, ev *domain.Event) error {
	ev.ID = len(r.events) + 1
	r.events[ev.ID] = ev
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*domain.Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return ev, nil
}

func (r *fakeEventRepo) Update(_ context.Context, ev *domain.Event) error { return nil }
func (r *fakeEventRepo) Delete(_ context.Context, id int) error           { return nil }

func (r *fakeEventRepo) ListUpcoming(_ context.Context, from, to time.Time) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, ev := range r.events {
		if ev.RecurrenceFreq != domain.RecurNone || (!ev.StartsAt.Before(from) && !ev.StartsAt.After(to)) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeRSVPRepo struct {
	rsvps  []*domain.RSVP
	nextID int
	clock  time.Time
}

func (r *fakeRSVPRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeRSVPRepo) Create(_ context.Context, rsvp *domain.RSVP) error {
	for _, existing := range r.rsvps {
		if existing.EventID == rsvp.EventID && existing.UserID == rsvp.UserID {
			return domain.ErrAlreadyAttending
		}
	}
	r.nextID++
	rsvp.ID = r.nextID
	rsvp.CreatedAt = r.tick()
	r.rsvps = append(r.rsvps, rsvp)
	return nil
}

func (r *fakeRSVPRepo) GetByEventAndUser(_ context.Context, eventID, userID int) (*domain.RSVP, error) {
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID && rsvp.UserID == userID {
			return rsvp, nil
		}
	}
	return nil, domain.ErrRSVPNotFound
}

func (r *fakeRSVPRepo) UpdateStatus(_ context.Context, id int, status domain.RSVPStatus) error {
	for _, rsvp := range r.rsvps {
		if rsvp.ID == id {
			rsvp.Status = status
			return nil
		}
	}
	return domain.ErrRSVPNotFound
}

func (r *fakeRSVPRepo) CountGoing(_ context.Context, eventID int) (int, error) {
	count := 0
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == domain.RSVPGoing {
			count++
		}
	}
	return count, nil
}

func (r *fakeRSVPRepo) ListByEvent(_ context.Context, eventID int) ([]*domain.RSVP, error) {
	var out []*domain.RSVP
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID {
			out = append(out, rsvp)
		}
	}
	return out, nil
}

func (r *fakeRSVPRepo) FirstWaitlisted(_ context.Context, eventID int) (*domain.RSVP, error) {
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == domain.RSVPWaitlisted {
			return rsvp, nil
		}
	}
	return nil, domain.ErrRSVPNotFound
}

func setupEventUseCase(t *testing.T, capacity int) (*EventUseCase, *domain.Event, context.Context) {
	t.Helper()

	eventRepo := &fakeEventRepo{events: make(map[int]*domain.Event)}
	rsvpRepo := &fakeRSVPRepo{clock: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	uc := NewEventUseCase(eventRepo, rsvpRepo, slog.Default())

	ev := &domain.Event{
		HostUserID: 1,
		Title:      "Nature walk",
		StartsAt:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Capacity:   capacity,
	}
	ctx := context.Background()
	if err := eventRepo.Create(ctx, ev); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return uc, ev, ctx
}

func TestRSVP_WaitlistsWhenFull(t *testing.T) {
	uc, ev, ctx := setupEventUseCase(t, 2)

	for userID := 10; userID < 12; userID++ {
		resp, err := uc.RSVP(ctx, ev.ID, userID)
		if err != nil {
			t.Fatalf("rsvp user %d: %v", userID, err)
		}
		if resp.Waitlisted {
			t.Errorf("user %d should be going, got waitlisted", userID)
		}
	}

	resp, err := uc.RSVP(ctx, ev.ID, 12)
	if err != nil {
		t.Fatalf("rsvp over capacity: %v", err)
	}
	if !resp.Waitlisted || resp.RSVP.Status != domain.RSVPWaitlisted {
		t.Error("expected third attendee to be waitlisted")
	}
}

func TestRSVP_DuplicateRejected(t *testing.T) {
	uc, ev, ctx := setupEventUseCase(t, 0)

	if _, err := uc.RSVP(ctx, ev.ID, 10); err != nil {
		t.Fatalf("first rsvp: %v", err)
	}
	if _, err := uc.RSVP(ctx, ev.ID, 10); err != domain.ErrAlreadyAttending {
		t.Errorf("expected ErrAlreadyAttending, got %v", err)
	}
}

func TestRSVP_UnlimitedCapacityNeverWaitlists(t *testing.T) {
	uc, ev, ctx := setupEventUseCase(t, 0)

	for userID := 10; userID < 30; userID++ {
		resp, err := uc.RSVP(ctx, ev.ID, userID)
		if err != nil {
			t.Fatalf("rsvp user %d: %v", userID, err)
		}
		if resp.Waitlisted {
			t.Errorf("user %d waitlisted despite unlimited capacity", userID)
		}
	}
}

func TestCancelRSVP_PromotesEarliestWaitlisted(t *testing.T) {
	uc, ev, ctx := setupEventUseCase(t, 2)

	// Fill capacity, then waitlist two more in order.
	for _, userID := range []int{10, 11, 12, 13} {
		if _, err := uc.RSVP(ctx, ev.ID, userID); err != nil {
			t.Fatalf("rsvp user %d: %v", userID, err)
		}
	}

	if err := uc.CancelRSVP(ctx, ev.ID, 10); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	attendees, err := uc.Attendees(ctx, ev.ID)
	if err != nil {
		t.Fatalf("attendees: %v", err)
	}

	status := make(map[int]domain.RSVPStatus)
	for _, rsvp := range attendees {
		status[rsvp.UserID] = rsvp.Status
	}

	if status[10] != domain.RSVPCancelled {
		t.Errorf("user 10 should be cancelled, got %s", status[10])
	}
	if status[12] != domain.RSVPGoing {
		t.Errorf("earliest waitlisted (12) should be promoted, got %s", status[12])
	}
	if status[13] != domain.RSVPWaitlisted {
		t.Errorf("user 13 should stay waitlisted, got %s", status[13])
	}
}

func TestCancelRSVP_WaitlistedCancellationDoesNotPromote(t *testing.T) {
	uc, ev, ctx := setupEventUseCase(t, 1)

	for _, userID := range []int{10, 11, 12} {
		if _, err := uc.RSVP(ctx, ev.ID, userID); err != nil {
			t.Fatalf("rsvp user %d: %v", userID, err)
		}
	}

	// User 11 (waitlisted) leaves: no spot freed, no promotion.
	if err := uc.CancelRSVP(ctx, ev.ID, 11); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	attendees, _ := uc.Attendees(ctx, ev.ID)
	for _, rsvp := range attendees {
		if rsvp.UserID == 12 && rsvp.Status != domain.RSVPWaitlisted {
			t.Errorf("user 12 should stay waitlisted, got %s", rsvp.Status)
		}
	}
}

func TestListCalendar_MergesDerivedOccurrences(t *testing.T) {
	uc, ev, ctx := setupEventUseCase(t, 0)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Make the seeded event weekly starting next Monday.
	ev.StartsAt = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	ev.RecurrenceFreq = domain.RecurWeekly

	occurrences, err := uc.ListCalendar(ctx, now)
	if err != nil {
		t.Fatalf("list calendar: %v", err)
	}

	// Base occurrence plus weekly derived ones: 12 in the 90-day window.
	if len(occurrences) < 12 || len(occurrences) > 13 {
		t.Errorf("expected 12-13 occurrences, got %d", len(occurrences))
	}
	if occurrences[0].Derived {
		t.Error("first occurrence should be the persisted base event")
	}
	for i := 1; i < len(occurrences); i++ {
		if occurrences[i].OccursAt.Before(occurrences[i-1].OccursAt) {
			t.Error("occurrences must be ordered by date")
		}
		if !occurrences[i].Derived {
			t.Errorf("occurrence %d should be derived", i)
		}
	}
}
