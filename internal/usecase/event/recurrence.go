package event

import (
	"time"

	"github.com/villagehs/village-backend/internal/domain"
)

// maxAdvances caps recurrence expansion regardless of the window.
const maxAdvances = 52

// DefaultWindow is how far ahead occurrence expansion looks.
const DefaultWindow = 90 * 24 * time.Hour

// ExpandOccurrences projects a recurring event into derived occurrences
// inside (base, windowEnd]. The base date itself is the persisted record and
// is not re-emitted. Rules:
//   - weekly advances 7 days, fortnightly 14, monthly one calendar month
//     (date overflow normalizes, e.g. Jan 31 -> Mar 2/3);
//   - expansion stops past min(recurrence end, windowEnd) or after 52
//     advances, whichever binds first;
//   - dates before today are skipped silently, not emitted;
//   - an unrecognized frequency yields an empty list.
func ExpandOccurrences(ev *domain.Event, now, windowEnd time.Time) []domain.EventOccurrence {
	days, months, ok := ev.RecurrenceFreq.Period()
	if !ok {
		return nil
	}

	end := windowEnd
	if ev.RecurrenceEnds != nil && ev.RecurrenceEnds.Before(end) {
		end = *ev.RecurrenceEnds
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []domain.EventOccurrence
	next := ev.StartsAt
	for i := 0; i < maxAdvances; i++ {
		next = next.AddDate(0, months, days)
		if next.After(end) {
			break
		}
		if next.Before(today) {
			continue
		}
		out = append(out, domain.EventOccurrence{
			Event:    *ev,
			OccursAt: next,
			Derived:  true,
		})
	}
	return out
}
