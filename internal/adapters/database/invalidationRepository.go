package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rasana/internal/core/invalidation"
)

type InvalidationRepositoryDatabase struct {
	db *gorm.DB
}

func NewInvalidationRepositoryDatabase(db *gorm.DB) *InvalidationRepositoryDatabase {
	return &InvalidationRepositoryDatabase{db: db}
}

func (repo *InvalidationRepositoryDatabase) Enqueue(ctx context.Context, event *invalidation.Event) error {
	return repo.db.WithContext(ctx).Create(event).Error
}

func (repo *InvalidationRepositoryDatabase) GetPending(ctx context.Context, limit int64) ([]*invalidation.Event, error) {
	var events []*invalidation.Event
	err := repo.db.WithContext(ctx).
		Where("status = ?", invalidation.StatusPending).
		Order("id ASC").
		Limit(int(limit)).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *InvalidationRepositoryDatabase) MarkDone(ctx context.Context, id uint64) error {
	now := time.Now()
	return repo.db.WithContext(ctx).
		Model(&invalidation.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       invalidation.StatusDone,
			"processed_at": &now,
		}).Error
}

func (repo *InvalidationRepositoryDatabase) MarkFailed(ctx context.Context, id uint64) error {
	now := time.Now()
	return repo.db.WithContext(ctx).
		Model(&invalidation.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       invalidation.StatusFailed,
			"processed_at": &now,
		}).Error
}
