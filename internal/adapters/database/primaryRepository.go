package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	interactionEntity "rasana/internal/core/interaction"
)

// PrimaryRepositoryDatabase maps public fsids to internal primary ids.
// Every addressable entity table carries the same (id, fsid) pair, so
// one adapter serves all kinds.
type PrimaryRepositoryDatabase struct {
	db *gorm.DB
}

func NewPrimaryRepositoryDatabase(db *gorm.DB) *PrimaryRepositoryDatabase {
	return &PrimaryRepositoryDatabase{db: db}
}

func tableForKind(kind interactionEntity.Kind) (string, error) {
	switch kind {
	case interactionEntity.KindUser:
		return "users", nil
	case interactionEntity.KindGroup:
		return "groups", nil
	case interactionEntity.KindHashtag:
		return "hashtags", nil
	case interactionEntity.KindGeotag:
		return "geotags", nil
	case interactionEntity.KindPost:
		return "posts", nil
	case interactionEntity.KindComment:
		return "comments", nil
	}
	return "", fmt.Errorf("unknown kind %d", kind)
}

func (repo *PrimaryRepositoryDatabase) ResolveID(ctx context.Context, kind interactionEntity.Kind, fsid string) (uint64, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return 0, err
	}
	var id uint64
	err = repo.db.WithContext(ctx).Table(table).Select("id").Where("fsid = ?", fsid).Take(&id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (repo *PrimaryRepositoryDatabase) ResolveIDs(ctx context.Context, kind interactionEntity.Kind, fsids []string) ([]uint64, error) {
	if len(fsids) == 0 {
		return nil, nil
	}
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}
	var ids []uint64
	err = repo.db.WithContext(ctx).Table(table).Where("fsid IN ?", fsids).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *PrimaryRepositoryDatabase) FsidsByIDs(ctx context.Context, kind interactionEntity.Kind, ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID   uint64
		Fsid string
	}
	err = repo.db.WithContext(ctx).Table(table).Select("id, fsid").Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Fsid
	}
	return out, nil
}
