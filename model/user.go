package model

// ListeningEvent is one reported playback window. Append-only: once stored it
// is never mutated.
type ListeningEvent struct {
	ID          string   `json:"id,omitempty"` // assigned server-side
	SermonID    SermonID `json:"sermonId"`
	SermonTitle string   `json:"sermonTitle"`
	AlbumTitle  string   `json:"albumTitle,omitempty"`
	Timestamp   string   `json:"timestamp"` // RFC3339, UTC
	Duration    int64    `json:"duration"`  // whole seconds
}

// ListeningStats accumulates a user's playback history.
type ListeningStats struct {
	TotalSeconds int64            `json:"totalSeconds"`
	History      []ListeningEvent `json:"history"`
}

// UserAggregate is the per-identity server-side record. Identity is the map
// key (typically an email), not a field of the record itself.
type UserAggregate struct {
	Streak         int            `json:"streak"`
	Bookmarks      []SermonID     `json:"bookmarks"`
	LastVisitDate  string         `json:"lastVisitDate,omitempty"`
	ListeningStats ListeningStats `json:"listeningStats"`
}

// NewUserAggregate returns the zero-valued default record. Slices are non-nil
// so the serialized shape is always {streak:0, bookmarks:[], listeningStats:
// {totalSeconds:0, history:[]}} rather than nulls.
func NewUserAggregate() *UserAggregate {
	return &UserAggregate{
		Bookmarks: []SermonID{},
		ListeningStats: ListeningStats{
			History: []ListeningEvent{},
		},
	}
}

// Normalize defaults missing sub-fields to their zero values after a read
// from storage. There is no schema migration beyond this.
func (u *UserAggregate) Normalize() {
	if u.Bookmarks == nil {
		u.Bookmarks = []SermonID{}
	}
	if u.ListeningStats.History == nil {
		u.ListeningStats.History = []ListeningEvent{}
	}
}

// Clone returns a deep copy, so stores can hand out records without sharing
// slices with their internal state.
func (u *UserAggregate) Clone() *UserAggregate {
	out := &UserAggregate{
		Streak:        u.Streak,
		LastVisitDate: u.LastVisitDate,
		Bookmarks:     make([]SermonID, len(u.Bookmarks)),
		ListeningStats: ListeningStats{
			TotalSeconds: u.ListeningStats.TotalSeconds,
			History:      make([]ListeningEvent, len(u.ListeningStats.History)),
		},
	}
	copy(out.Bookmarks, u.Bookmarks)
	copy(out.ListeningStats.History, u.ListeningStats.History)
	return out
}

// SyncPayload is the body of a profile push. It replaces exactly these three
// fields of the aggregate, leaving listening stats untouched.
type SyncPayload struct {
	Streak        int        `json:"streak"`
	Bookmarks     []SermonID `json:"bookmarks"`
	LastVisitDate string     `json:"lastVisitDate"`
}

// ListenPayload is the body of a listening report.
type ListenPayload struct {
	SermonID        SermonID `json:"sermonId"`
	SermonTitle     string   `json:"sermonTitle"`
	AlbumTitle      string   `json:"albumTitle,omitempty"`
	DurationSeconds int64    `json:"durationSeconds"`
}

// RankedItem is one entry of the wrapped rankings.
type RankedItem struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// WrappedStats is the derived all-time summary computed from raw history.
type WrappedStats struct {
	TotalHours float64     `json:"totalHours"`
	TopSermon  *RankedItem `json:"topSermon"`
	TopAlbum   *RankedItem `json:"topAlbum"`
}
