package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gracefm/logger"
	"gracefm/model"
)

// FileStore keeps the whole aggregate map as one JSON document on disk, the
// shape the sync protocol was born with. Durability is whatever the backing
// filesystem provides; on hosts with non-durable local storage this is
// explicitly best-effort. The single document forces a store-wide lock, which
// trivially satisfies the per-identity serialization contract.
type FileStore struct {
	mu    sync.Mutex
	path  string
	users map[string]*model.UserAggregate
}

// NewFileStore opens the document at path, creating an empty store when the
// file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:  path,
		users: make(map[string]*model.UserAggregate),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user data file: %w", err)
	}

	if err := json.Unmarshal(data, &store.users); err != nil {
		return nil, fmt.Errorf("decode user data file: %w", err)
	}
	for _, user := range store.users {
		user.Normalize()
	}
	return store, nil
}

// Get returns a copy of the identity's record, or the zero-valued default.
func (s *FileStore) Get(_ context.Context, identity string) (*model.UserAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[identity]
	if !ok {
		return model.NewUserAggregate(), nil
	}
	return user.Clone(), nil
}

// SyncProfile upserts the three profile fields, leaving listening stats as
// they are.
func (s *FileStore) SyncProfile(_ context.Context, identity string, payload model.SyncPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.ensure(identity)
	user.Streak = payload.Streak
	user.LastVisitDate = payload.LastVisitDate
	user.Bookmarks = make([]model.SermonID, len(payload.Bookmarks))
	copy(user.Bookmarks, payload.Bookmarks)

	return s.persist()
}

// AppendListening appends one event and grows the running total.
func (s *FileStore) AppendListening(_ context.Context, identity string, event model.ListeningEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.ensure(identity)
	user.ListeningStats.History = append(user.ListeningStats.History, event)
	user.ListeningStats.TotalSeconds += event.Duration

	return s.persist()
}

// ensure returns the identity's record, creating the zero-valued default.
// Caller holds mu.
func (s *FileStore) ensure(identity string) *model.UserAggregate {
	user, ok := s.users[identity]
	if !ok {
		user = model.NewUserAggregate()
		s.users[identity] = user
	}
	return user
}

// persist writes the document. Caller holds mu. Write goes through a temp
// file and rename so a crash mid-write can't truncate the document.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write user data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace user data file: %w", err)
	}

	logger.Debug("user data persisted", logger.String("path", s.path), logger.Int("identities", len(s.users)))
	return nil
}
