package event

import (
	"testing"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
)

func recurringEvent(start time.Time, freq domain.RecurrenceFreq) *domain.Event {
	return &domain.Event{
		ID:             1,
		Title:          "Park meetup",
		StartsAt:       start,
		RecurrenceFreq: freq,
	}
}

func TestExpandOccurrences_WeeklyNinetyDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday
	nextMonday := now.AddDate(0, 0, 7)
	windowEnd := now.Add(DefaultWindow)

	ev := recurringEvent(nextMonday, domain.RecurWeekly)
	got := ExpandOccurrences(ev, now, windowEnd)

	// ~90/7 weekly advances from the base date: 12 fit the window (the base
	// itself is the persisted record, not a derived occurrence).
	if len(got) < 11 || len(got) > 13 {
		t.Errorf("expected 11-13 weekly occurrences in 90 days, got %d", len(got))
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, occ := range got {
		if occ.OccursAt.After(windowEnd) {
			t.Errorf("occurrence %v past window end %v", occ.OccursAt, windowEnd)
		}
		if occ.OccursAt.Before(today) {
			t.Errorf("occurrence %v before today", occ.OccursAt)
		}
		if !occ.Derived {
			t.Error("expanded occurrence must be marked derived")
		}
	}
}

func TestExpandOccurrences_NeverMoreThan52(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ev := recurringEvent(now, domain.RecurWeekly)

	// A huge window still caps at 52 advances.
	got := ExpandOccurrences(ev, now, now.AddDate(10, 0, 0))
	if len(got) > 52 {
		t.Errorf("expected at most 52 occurrences, got %d", len(got))
	}
}

func TestExpandOccurrences_EndDateBindsBeforeWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ends := now.AddDate(0, 0, 21)
	ev := recurringEvent(now, domain.RecurWeekly)
	ev.RecurrenceEnds = &ends

	got := ExpandOccurrences(ev, now, now.Add(DefaultWindow))
	if len(got) != 3 {
		t.Errorf("expected 3 occurrences before the rule's end date, got %d", len(got))
	}
	for _, occ := range got {
		if occ.OccursAt.After(ends) {
			t.Errorf("occurrence %v past recurrence end %v", occ.OccursAt, ends)
		}
	}
}

func TestExpandOccurrences_SkipsPastDates(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	// Base three weeks ago: the first two advances land in the past.
	ev := recurringEvent(now.AddDate(0, 0, -21), domain.RecurWeekly)

	got := ExpandOccurrences(ev, now, now.Add(DefaultWindow))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, occ := range got {
		if occ.OccursAt.Before(today) {
			t.Errorf("occurrence %v before today", occ.OccursAt)
		}
	}
	if len(got) == 0 {
		t.Error("expected future occurrences despite past base date")
	}
	// The advance landing on today (9am) is emitted.
	if !got[0].OccursAt.Equal(now) {
		t.Errorf("first occurrence = %v, want %v", got[0].OccursAt, now)
	}
}

func TestExpandOccurrences_Fortnightly(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ev := recurringEvent(now, domain.RecurFortnightly)

	got := ExpandOccurrences(ev, now, now.AddDate(0, 0, 30))
	if len(got) != 2 {
		t.Fatalf("expected 2 fortnightly occurrences in 30 days, got %d", len(got))
	}
	if want := now.AddDate(0, 0, 14); !got[0].OccursAt.Equal(want) {
		t.Errorf("first occurrence = %v, want %v", got[0].OccursAt, want)
	}
}

func TestExpandOccurrences_MonthlyOverflowNormalizes(t *testing.T) {
	now := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	ev := recurringEvent(now, domain.RecurMonthly)

	got := ExpandOccurrences(ev, now, now.AddDate(0, 2, 0))
	if len(got) == 0 {
		t.Fatal("expected at least one monthly occurrence")
	}
	// Jan 31 + 1 month normalizes to Mar 3 (2026 is not a leap year).
	want := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	if !got[0].OccursAt.Equal(want) {
		t.Errorf("overflow occurrence = %v, want %v", got[0].OccursAt, want)
	}
}

func TestExpandOccurrences_UnrecognizedFreq(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for _, freq := range []domain.RecurrenceFreq{domain.RecurNone, "daily", "annually"} {
		ev := recurringEvent(now, freq)
		if got := ExpandOccurrences(ev, now, now.Add(DefaultWindow)); len(got) != 0 {
			t.Errorf("freq %q: expected empty expansion, got %d", freq, len(got))
		}
	}
}
