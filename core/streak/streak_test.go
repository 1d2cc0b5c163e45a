package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05Z07:00", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		now       time.Time
		wantCount int
		wantDate  string
	}{
		{
			name:      "first visit ever",
			rec:       Record{},
			now:       date("2024-03-02T10:00:00Z"),
			wantCount: 1,
			wantDate:  "2024-03-02",
		},
		{
			name:      "consecutive day increments",
			rec:       Record{Count: 5, LastVisitDate: "2024-03-01"},
			now:       date("2024-03-02T10:00:00Z"),
			wantCount: 6,
			wantDate:  "2024-03-02",
		},
		{
			name:      "same day is a no-op on the count",
			rec:       Record{Count: 5, LastVisitDate: "2024-03-01"},
			now:       date("2024-03-01T23:59:59Z"),
			wantCount: 5,
			wantDate:  "2024-03-01",
		},
		{
			name:      "gap of two days resets",
			rec:       Record{Count: 5, LastVisitDate: "2024-03-01"},
			now:       date("2024-03-04T08:00:00Z"),
			wantCount: 1,
			wantDate:  "2024-03-04",
		},
		{
			name:      "clock moved backward resets",
			rec:       Record{Count: 5, LastVisitDate: "2024-03-10"},
			now:       date("2024-03-05T08:00:00Z"),
			wantCount: 1,
			wantDate:  "2024-03-05",
		},
		{
			name:      "month boundary",
			rec:       Record{Count: 2, LastVisitDate: "2024-02-29"},
			now:       date("2024-03-01T00:00:01Z"),
			wantCount: 3,
			wantDate:  "2024-03-01",
		},
		{
			name: "UTC date decides the day, not local time",
			rec:  Record{Count: 1, LastVisitDate: "2024-03-01"},
			// 23:30 on Mar 1 in UTC+8 is still Mar 1 in local terms but
			// the comparison must use UTC, where it is already Mar 1 15:30.
			now:       date("2024-03-01T23:30:00+08:00"),
			wantCount: 1,
			wantDate:  "2024-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.rec, tt.now)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Equal(t, tt.wantDate, got.LastVisitDate)
		})
	}
}

func TestAdvanceIsIdempotentWithinOneDay(t *testing.T) {
	now := date("2024-03-02T10:00:00Z")

	first := Advance(Record{Count: 5, LastVisitDate: "2024-03-01"}, now)
	assert.Equal(t, 6, first.Count)

	second := Advance(first, now)
	assert.Equal(t, first, second)
}

func TestAdvanceIsPure(t *testing.T) {
	rec := Record{Count: 3, LastVisitDate: "2024-06-10"}
	now := date("2024-06-11T05:00:00Z")

	a := Advance(rec, now)
	b := Advance(rec, now)
	assert.Equal(t, a, b)
	// Input untouched.
	assert.Equal(t, Record{Count: 3, LastVisitDate: "2024-06-10"}, rec)
}
