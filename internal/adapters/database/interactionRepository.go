package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	interactionEntity "rasana/internal/core/interaction"
)

type InteractionRepositoryDatabase struct {
	db *gorm.DB
}

func NewInteractionRepositoryDatabase(db *gorm.DB) *InteractionRepositoryDatabase {
	return &InteractionRepositoryDatabase{db: db}
}

func (repo *InteractionRepositoryDatabase) BlockedIDs(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error) {
	var ids []uint64
	err := repo.db.WithContext(ctx).
		Model(&interactionEntity.BlockRelation{}).
		Where("user_id = ? AND block_kind = ?", viewerID, kind).
		Pluck("blocked_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *InteractionRepositoryDatabase) FollowedIDs(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error) {
	var ids []uint64
	err := repo.db.WithContext(ctx).
		Model(&interactionEntity.FollowRelation{}).
		Where("user_id = ? AND follow_kind = ?", viewerID, kind).
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *InteractionRepositoryDatabase) IsFollowing(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, followedID uint64) (bool, error) {
	var rel interactionEntity.FollowRelation
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND follow_kind = ? AND followed_id = ?", viewerID, kind, followedID).
		First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (repo *InteractionRepositoryDatabase) Block(ctx context.Context, rel *interactionEntity.BlockRelation) error {
	return repo.db.WithContext(ctx).Create(rel).Error
}

func (repo *InteractionRepositoryDatabase) Unblock(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, blockedID uint64) error {
	return repo.db.WithContext(ctx).
		Where("user_id = ? AND block_kind = ? AND blocked_id = ?", viewerID, kind, blockedID).
		Delete(&interactionEntity.BlockRelation{}).Error
}

func (repo *InteractionRepositoryDatabase) Follow(ctx context.Context, rel *interactionEntity.FollowRelation) error {
	return repo.db.WithContext(ctx).Create(rel).Error
}

func (repo *InteractionRepositoryDatabase) Unfollow(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, followedID uint64) error {
	return repo.db.WithContext(ctx).
		Where("user_id = ? AND follow_kind = ? AND followed_id = ?", viewerID, kind, followedID).
		Delete(&interactionEntity.FollowRelation{}).Error
}
