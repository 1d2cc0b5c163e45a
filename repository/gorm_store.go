package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gracefm/model"
)

// userAggregateRow is the storage row: one identity, one serialized document.
// The document keeps the wire shape so file-store data can be imported as-is.
type userAggregateRow struct {
	Identity  string    `gorm:"primaryKey;size:255;column:identity"`
	Document  []byte    `gorm:"type:json;column:document"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userAggregateRow) TableName() string {
	return "user_aggregates"
}

// GormStore keeps one row per identity in MySQL. Read-modify-write cycles
// run under a per-identity mutex, so racing writers to the same record are
// serialized while different identities proceed independently.
type GormStore struct {
	db    *gorm.DB
	locks *identityLocks
}

// NewGormStore migrates the schema and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&userAggregateRow{}); err != nil {
		return nil, fmt.Errorf("migrate user_aggregates: %w", err)
	}
	return &GormStore{db: db, locks: newIdentityLocks()}, nil
}

// Get returns the identity's record, or the zero-valued default.
func (s *GormStore) Get(ctx context.Context, identity string) (*model.UserAggregate, error) {
	return s.load(ctx, identity)
}

// SyncProfile upserts the three profile fields, leaving listening stats as
// they are.
func (s *GormStore) SyncProfile(ctx context.Context, identity string, payload model.SyncPayload) error {
	lock := s.locks.lock(identity)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.load(ctx, identity)
	if err != nil {
		return err
	}

	user.Streak = payload.Streak
	user.LastVisitDate = payload.LastVisitDate
	user.Bookmarks = make([]model.SermonID, len(payload.Bookmarks))
	copy(user.Bookmarks, payload.Bookmarks)

	return s.save(ctx, identity, user)
}

// AppendListening appends one event and grows the running total.
func (s *GormStore) AppendListening(ctx context.Context, identity string, event model.ListeningEvent) error {
	lock := s.locks.lock(identity)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.load(ctx, identity)
	if err != nil {
		return err
	}

	user.ListeningStats.History = append(user.ListeningStats.History, event)
	user.ListeningStats.TotalSeconds += event.Duration

	return s.save(ctx, identity, user)
}

func (s *GormStore) load(ctx context.Context, identity string) (*model.UserAggregate, error) {
	var row userAggregateRow
	err := s.db.WithContext(ctx).First(&row, "identity = ?", identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NewUserAggregate(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load aggregate for %s: %w", identity, err)
	}

	user := model.NewUserAggregate()
	if len(row.Document) > 0 {
		if err := json.Unmarshal(row.Document, user); err != nil {
			return nil, fmt.Errorf("decode aggregate for %s: %w", identity, err)
		}
	}
	user.Normalize()
	return user, nil
}

func (s *GormStore) save(ctx context.Context, identity string, user *model.UserAggregate) error {
	document, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode aggregate for %s: %w", identity, err)
	}

	row := userAggregateRow{Identity: identity, Document: document, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save aggregate for %s: %w", identity, err)
	}
	return nil
}
