package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	groupEntity "rasana/internal/core/group"
)

type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

func (repo *GroupRepositoryDatabase) FindByID(ctx context.Context, id uint64) (*groupEntity.Group, error) {
	var g groupEntity.Group
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) FindByFsids(ctx context.Context, fsids []string) ([]*groupEntity.Group, error) {
	var groups []*groupEntity.Group
	if len(fsids) == 0 {
		return groups, nil
	}
	if err := repo.db.WithContext(ctx).Where("fsid IN ?", fsids).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// SubgroupIDs walks the parent_id tree level by level until no new
// children appear. Trees are shallow in practice, so a few round trips
// beat a recursive CTE here.
func (repo *GroupRepositoryDatabase) SubgroupIDs(ctx context.Context, parentIDs []uint64) ([]uint64, error) {
	var all []uint64
	seen := make(map[uint64]bool, len(parentIDs))
	for _, id := range parentIDs {
		seen[id] = true
	}

	frontier := parentIDs
	for len(frontier) > 0 {
		var children []uint64
		err := repo.db.WithContext(ctx).
			Model(&groupEntity.Group{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, id := range children {
			if seen[id] {
				continue
			}
			seen[id] = true
			all = append(all, id)
			frontier = append(frontier, id)
		}
	}
	return all, nil
}

func (repo *GroupRepositoryDatabase) PrivateGroupIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := repo.db.WithContext(ctx).
		Model(&groupEntity.Group{}).
		Where("is_private = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
