package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hostel-income-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	SaveReportRun(ctx context.Context, run *model.ReportRun) error
	ListReportRuns(ctx context.Context, ownerID string, limit int) ([]model.ReportRun, error)
	GetReportRun(ctx context.Context, id uint) (*model.ReportRun, error)
	SubscriptionsForOwner(ctx context.Context, ownerID string) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying gorm handle for handlers that operate on it
// directly.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// SaveReportRun persists one finished report run.
func (s *gormStore) SaveReportRun(ctx context.Context, run *model.ReportRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("save report run for owner %s: %w", run.OwnerID, err)
	}
	return nil
}

// ListReportRuns returns the most recent runs for an owner, newest first,
// without the stored payloads.
func (s *gormStore) ListReportRuns(ctx context.Context, ownerID string, limit int) ([]model.ReportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []model.ReportRun
	err := s.db.WithContext(ctx).
		Select("id", "owner_id", "hostel", "range_start", "range_end",
			"expected", "received", "pending", "count_all", "count_pending", "created_at").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list report runs for owner %s: %w", ownerID, err)
	}
	return runs, nil
}

// GetReportRun fetches one stored run including its payload.
func (s *gormStore) GetReportRun(ctx context.Context, id uint) (*model.ReportRun, error) {
	var run model.ReportRun
	if err := s.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// SubscriptionsForOwner returns every push subscription watching an owner.
func (s *gormStore) SubscriptionsForOwner(ctx context.Context, ownerID string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for owner %s: %w", ownerID, err)
	}
	return subs, nil
}
