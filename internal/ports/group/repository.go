package group

import (
	"context"

	groupEntity "rasana/internal/core/group"
)

type GroupRepository interface {
	FindByID(ctx context.Context, id uint64) (*groupEntity.Group, error)
	FindByFsids(ctx context.Context, fsids []string) ([]*groupEntity.Group, error)
	// SubgroupIDs returns ids of all direct and transitive children.
	SubgroupIDs(ctx context.Context, parentIDs []uint64) ([]uint64, error)
	PrivateGroupIDs(ctx context.Context) ([]uint64, error)
}
