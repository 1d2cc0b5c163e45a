package streak

import "time"

// DateLayout is the wire form of a visit date: a UTC calendar day.
const DateLayout = "2006-01-02"

// Record is the persisted streak state.
type Record struct {
	Count         int    `json:"count"`
	LastVisitDate string `json:"lastVisitDate"`
}

// Today returns now's calendar date at UTC granularity.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Advance applies the once-per-day transition and returns the new record.
// It is a pure function of (stored record, now):
//   - no prior visit        -> count 1
//   - last visit today      -> count unchanged (idempotent re-entry)
//   - last visit yesterday  -> count + 1
//   - anything else         -> count 1 (gap of two or more days, or a clock
//     that moved backward)
//
// The visit date is always rewritten to today. All comparisons are on
// UTC-aligned dates so local timezones can't split or double a day.
func Advance(rec Record, now time.Time) Record {
	today := Today(now)
	yesterday := Today(now.UTC().AddDate(0, 0, -1))

	count := rec.Count
	switch rec.LastVisitDate {
	case "":
		count = 1
	case today:
		// Already counted today.
	case yesterday:
		count++
	default:
		count = 1
	}

	return Record{Count: count, LastVisitDate: today}
}
