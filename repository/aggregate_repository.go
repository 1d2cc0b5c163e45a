package repository

import (
	"context"
	"sync"

	"gracefm/model"
)

// AggregateRepository is the per-identity aggregation store.
//
// Get for a never-seen identity returns the zero-valued default record, not
// an error. SyncProfile replaces exactly the streak, bookmarks and last-visit
// fields, leaving listening stats untouched; AppendListening appends one
// event and adds its duration to the total, creating the record with
// zero-valued defaults if needed. Implementations must serialize
// read-modify-write access per identity so a profile push racing a listening
// report never clobbers the other's fields; no cross-identity atomicity is
// required.
type AggregateRepository interface {
	Get(ctx context.Context, identity string) (*model.UserAggregate, error)
	SyncProfile(ctx context.Context, identity string, payload model.SyncPayload) error
	AppendListening(ctx context.Context, identity string, event model.ListeningEvent) error
}

// identityLocks hands out one mutex per identity so records of different
// identities never wait on each other.
type identityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newIdentityLocks() *identityLocks {
	return &identityLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *identityLocks) lock(identity string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[identity]
	if !ok {
		m = &sync.Mutex{}
		l.locks[identity] = m
	}
	return m
}
