package interaction

import (
	"context"

	interactionEntity "rasana/internal/core/interaction"
)

type InteractionRepository interface {
	BlockedIDs(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error)
	FollowedIDs(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error)
	IsFollowing(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, followedID uint64) (bool, error)

	Block(ctx context.Context, rel *interactionEntity.BlockRelation) error
	Unblock(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, blockedID uint64) error
	Follow(ctx context.Context, rel *interactionEntity.FollowRelation) error
	Unfollow(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, followedID uint64) error
}
