package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tavrika-widget/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	RecordSubmission(ctx context.Context, sub *model.Submission) error
	ListSubmissions(ctx context.Context, date string, limit int) ([]model.Submission, error)

	UpsertSubscription(ctx context.Context, sub *model.StaffSubscription) error
	GetSubscription(ctx context.Context, endpoint string) (*model.StaffSubscription, error)
	ListSubscriptions(ctx context.Context) ([]model.StaffSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordSubmission appends a delivery attempt to the journal.
func (s *gormStore) RecordSubmission(ctx context.Context, sub *model.Submission) error {
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to record submission %s: %w", sub.ID, err)
	}
	return nil
}

// ListSubmissions returns the newest submissions, optionally for one date.
func (s *gormStore) ListSubmissions(ctx context.Context, date string, limit int) ([]model.Submission, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var subs []model.Submission
	if err := q.Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// UpsertSubscription creates a subscription or refreshes its keys.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.StaffSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "label"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.StaffSubscription, error) {
	var sub model.StaffSubscription
	if err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) ListSubscriptions(ctx context.Context) ([]model.StaffSubscription, error) {
	var subs []model.StaffSubscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.StaffSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
