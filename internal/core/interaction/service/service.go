package interactionapp

import (
	"context"
	"errors"
	"fmt"

	interactionEntity "rasana/internal/core/interaction"
	"rasana/internal/core/invalidation"
	"rasana/internal/ports/cache"
	groupPort "rasana/internal/ports/group"
	interactionPort "rasana/internal/ports/interaction"
	invalidationPort "rasana/internal/ports/invalidation"
)

// InteractionService owns the block/follow graphs and resolves the
// exclusion sets the feed pipeline applies.
type InteractionService struct {
	InteractionRepository  interactionPort.InteractionRepository
	GroupRepository        groupPort.GroupRepository
	InvalidationRepository invalidationPort.InvalidationRepository
}

func NewInteractionService(
	interactionRepo interactionPort.InteractionRepository,
	groupRepo groupPort.GroupRepository,
	invalidationRepo invalidationPort.InvalidationRepository,
) *InteractionService {
	return &InteractionService{
		InteractionRepository:  interactionRepo,
		GroupRepository:        groupRepo,
		InvalidationRepository: invalidationRepo,
	}
}

// ResolveBlocked returns the set of entity ids of the given kind that are
// invisible to the viewer: explicit blocks plus, for groups, private groups
// the viewer is not a member of. Guests (viewerID 0) carry no explicit
// blocks but still never see private group content.
func (s *InteractionService) ResolveBlocked(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error) {
	var blocked []uint64

	if viewerID != 0 {
		ids, err := s.InteractionRepository.BlockedIDs(ctx, viewerID, kind)
		if err != nil {
			return nil, fmt.Errorf("resolving blocked %s ids: %w", kind, err)
		}
		blocked = ids
	}

	if kind != interactionEntity.KindGroup {
		return blocked, nil
	}

	privateIDs, err := s.GroupRepository.PrivateGroupIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving private group ids: %w", err)
	}

	var memberOf []uint64
	if viewerID != 0 {
		memberOf, err = s.InteractionRepository.FollowedIDs(ctx, viewerID, interactionEntity.KindGroup)
		if err != nil {
			return nil, fmt.Errorf("resolving group memberships: %w", err)
		}
	}

	member := make(map[uint64]struct{}, len(memberOf))
	for _, id := range memberOf {
		member[id] = struct{}{}
	}

	seen := make(map[uint64]struct{}, len(blocked))
	for _, id := range blocked {
		seen[id] = struct{}{}
	}
	for _, id := range privateIDs {
		if _, ok := member[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		blocked = append(blocked, id)
		seen[id] = struct{}{}
	}

	return blocked, nil
}

// FollowedIDs returns the viewer's follow graph for one dimension.
func (s *InteractionService) FollowedIDs(ctx context.Context, viewerID uint64, kind interactionEntity.Kind) ([]uint64, error) {
	return s.InteractionRepository.FollowedIDs(ctx, viewerID, kind)
}

func (s *InteractionService) Block(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error {
	if kind == interactionEntity.KindUser && viewerID == targetID {
		return errors.New("cannot block yourself")
	}

	rel := &interactionEntity.BlockRelation{
		UserID:    viewerID,
		BlockKind: kind,
		BlockedID: targetID,
	}
	if err := s.InteractionRepository.Block(ctx, rel); err != nil {
		return err
	}
	return s.enqueueListInvalidation(ctx, "block")
}

func (s *InteractionService) Unblock(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error {
	if err := s.InteractionRepository.Unblock(ctx, viewerID, kind, targetID); err != nil {
		return err
	}
	return s.enqueueListInvalidation(ctx, "unblock")
}

func (s *InteractionService) Follow(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error {
	if kind == interactionEntity.KindUser && viewerID == targetID {
		return errors.New("cannot follow yourself")
	}

	rel := &interactionEntity.FollowRelation{
		UserID:     viewerID,
		FollowKind: kind,
		FollowedID: targetID,
	}
	return s.InteractionRepository.Follow(ctx, rel)
}

func (s *InteractionService) Unfollow(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) error {
	return s.InteractionRepository.Unfollow(ctx, viewerID, kind, targetID)
}

func (s *InteractionService) IsFollowing(ctx context.Context, viewerID uint64, kind interactionEntity.Kind, targetID uint64) (bool, error) {
	return s.InteractionRepository.IsFollowing(ctx, viewerID, kind, targetID)
}

// Block graph changes affect guest listing caches; enqueue a tag
// invalidation so the worker clears them before TTL when it can.
func (s *InteractionService) enqueueListInvalidation(ctx context.Context, reason string) error {
	event := &invalidation.Event{
		CacheTag: cache.TagLists,
		Reason:   reason,
		Status:   invalidation.StatusPending,
	}
	return s.InvalidationRepository.Enqueue(ctx, event)
}
