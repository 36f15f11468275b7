package domain

import "time"

// RecurrenceFreq is the repeat period of a recurring event. An empty value
// means the event does not recur.
type RecurrenceFreq string

const (
	RecurNone        RecurrenceFreq = ""
	RecurWeekly      RecurrenceFreq = "weekly"
	RecurFortnightly RecurrenceFreq = "fortnightly"
	RecurMonthly     RecurrenceFreq = "monthly"
)

// Period returns the calendar step for one advance of the rule and whether
// the frequency is recognized. Monthly advances by one calendar month with
// normal date overflow normalization.
func (f RecurrenceFreq) Period() (days int, months int, ok bool) {
	switch f {
	case RecurWeekly:
		return 7, 0, true
	case RecurFortnightly:
		return 14, 0, true
	case RecurMonthly:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}

type Event struct {
	ID             int            `json:"id" db:"id"`
	HostUserID     int            `json:"host_user_id" db:"host_user_id"`
	Title          string         `json:"title" db:"title"`
	Description    *string        `json:"description" db:"description"`
	LocationName   *string        `json:"location_name" db:"location_name"`
	LocationLat    *float64       `json:"location_lat" db:"location_lat"`
	LocationLon    *float64       `json:"location_lon" db:"location_lon"`
	StartsAt       time.Time      `json:"starts_at" db:"starts_at"`
	Capacity       int            `json:"capacity" db:"capacity"` // 0 = unlimited
	RecurrenceFreq RecurrenceFreq `json:"recurrence_freq" db:"recurrence_freq"`
	RecurrenceEnds *time.Time     `json:"recurrence_ends" db:"recurrence_ends"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// EventOccurrence is a calendar occurrence of an event. Derived occurrences
// are projected from a recurrence rule for the current viewing window and
// are never persisted.
type EventOccurrence struct {
	Event
	OccursAt time.Time `json:"occurs_at"`
	Derived  bool      `json:"derived"`
}

// RSVPStatus is the attendance state of a user for an event.
type RSVPStatus string

const (
	RSVPGoing      RSVPStatus = "going"
	RSVPWaitlisted RSVPStatus = "waitlisted"
	RSVPCancelled  RSVPStatus = "cancelled"
)

type RSVP struct {
	ID        int        `json:"id" db:"id"`
	EventID   int        `json:"event_id" db:"event_id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Status    RSVPStatus `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
