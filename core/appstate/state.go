package appstate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"gracefm/core/streak"
	"gracefm/logger"
	"gracefm/model"
)

// State is the client-resident slice of user state that survives restarts.
type State struct {
	Streak        int              `json:"streak"`
	LastVisitDate string           `json:"lastVisitDate,omitempty"`
	Bookmarks     []model.SermonID `json:"bookmarks"`
}

// Syncer pushes profile state to the server. Satisfied by syncclient.Client.
type Syncer interface {
	Push(ctx context.Context, identity string, payload model.SyncPayload) error
}

// Controller owns the local state: it loads once at start, persists on every
// change, and pushes to the sync server whenever the streak is positive or
// the bookmark set is non-empty. Pushes are fire-and-forget; a failure is
// logged and the state stays local until the next change pushes again.
// There is deliberately no rate limit, so rapid bookmark toggling produces
// one push per toggle.
type Controller struct {
	mu       sync.Mutex
	path     string
	identity string
	syncer   Syncer
	now      func() time.Time

	state State
}

// NewController creates a controller persisting to path for the given
// identity. syncer may be nil for a purely local session.
func NewController(path, identity string, syncer Syncer) *Controller {
	return &Controller{
		path:     path,
		identity: identity,
		syncer:   syncer,
		now:      time.Now,
		state:    State{Bookmarks: []model.SermonID{}},
	}
}

// Load reads persisted state. A missing file is a first run, not an error.
func (c *Controller) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode state file: %w", err)
	}
	if state.Bookmarks == nil {
		state.Bookmarks = []model.SermonID{}
	}
	c.state = state
	return nil
}

// OpenSession runs the once-per-load streak transition, persists the result
// and pushes it. Calling it twice on the same UTC day leaves the count
// unchanged.
func (c *Controller) OpenSession(ctx context.Context) streak.Record {
	c.mu.Lock()

	rec := streak.Advance(streak.Record{
		Count:         c.state.Streak,
		LastVisitDate: c.state.LastVisitDate,
	}, c.now())

	c.state.Streak = rec.Count
	c.state.LastVisitDate = rec.LastVisitDate
	c.persistLocked()

	c.mu.Unlock()
	c.pushIfWarranted(ctx)
	return rec
}

// ToggleBookmark flips membership of id in the bookmark set and reports the
// new membership. Toggling twice restores the original state; the set never
// holds duplicates.
func (c *Controller) ToggleBookmark(ctx context.Context, id model.SermonID) bool {
	c.mu.Lock()

	bookmarked := false
	next := make([]model.SermonID, 0, len(c.state.Bookmarks)+1)
	for _, existing := range c.state.Bookmarks {
		if existing == id {
			continue
		}
		next = append(next, existing)
	}
	if len(next) == len(c.state.Bookmarks) {
		next = append(next, id)
		bookmarked = true
	}
	c.state.Bookmarks = next
	c.persistLocked()

	c.mu.Unlock()
	c.pushIfWarranted(ctx)
	return bookmarked
}

// IsBookmarked reports membership of id.
func (c *Controller) IsBookmarked(id model.SermonID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.state.Bookmarks {
		if existing == id {
			return true
		}
	}
	return false
}

// Bookmarks returns a copy of the bookmark set in insertion order.
func (c *Controller) Bookmarks() []model.SermonID {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.SermonID, len(c.state.Bookmarks))
	copy(out, c.state.Bookmarks)
	return out
}

// Streak returns the current streak record.
func (c *Controller) Streak() streak.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	return streak.Record{Count: c.state.Streak, LastVisitDate: c.state.LastVisitDate}
}

// persistLocked writes state to disk. Caller holds mu. Persistence is
// best-effort: a write failure is logged and the in-memory state stands.
func (c *Controller) persistLocked() {
	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		logger.Error("encode app state", logger.ErrorField(err))
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		logger.Error("persist app state", logger.String("path", c.path), logger.ErrorField(err))
	}
}

// pushIfWarranted pushes the profile fields when streak or bookmarks carry
// anything worth syncing. Failures are logged and dropped.
func (c *Controller) pushIfWarranted(ctx context.Context) {
	if c.syncer == nil || c.identity == "" {
		return
	}

	c.mu.Lock()
	payload := model.SyncPayload{
		Streak:        c.state.Streak,
		LastVisitDate: c.state.LastVisitDate,
		Bookmarks:     make([]model.SermonID, len(c.state.Bookmarks)),
	}
	copy(payload.Bookmarks, c.state.Bookmarks)
	c.mu.Unlock()

	if payload.Streak <= 0 && len(payload.Bookmarks) == 0 {
		return
	}

	if err := c.syncer.Push(ctx, c.identity, payload); err != nil {
		logger.Warn("profile push dropped",
			logger.String("identity", c.identity),
			logger.ErrorField(err))
	}
}
