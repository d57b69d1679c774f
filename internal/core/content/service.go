package content

import (
	"context"
	"time"

	"rasana/internal/apperr"
	"rasana/internal/config"
	userEntity "rasana/internal/core/user"
	groupPort "rasana/internal/ports/group"
	interactionPort "rasana/internal/ports/interaction"
	interactionEntity "rasana/internal/core/interaction"
)

// GetDateLimit computes the newest creation instant visible to the viewer,
// from subscription expiry and the configured grace window. Nil means
// unlimited. Group-specific overrides are the caller's business and take
// precedence when present.
func GetDateLimit(snap *config.Snapshot, viewer *userEntity.User, now time.Time) *time.Time {
	if viewer == nil || viewer.ExpiredAt == nil {
		return nil
	}
	if viewer.ExpiredAt.After(now) {
		return nil
	}

	limit := *viewer.ExpiredAt
	if snap.ContentRetentionMonths > 0 {
		// Expired accounts keep a grace window of visibility past expiry.
		limit = limit.AddDate(0, snap.ContentRetentionMonths, 0)
		if limit.After(now) {
			return nil
		}
	}
	return &limit
}

// PermissionService performs per-item visibility checks for detail views,
// mirroring the listing predicates.
type PermissionService struct {
	GroupRepository       groupPort.GroupRepository
	InteractionRepository interactionPort.InteractionRepository
	Snapshot              *config.Snapshot
}

func NewPermissionService(groupRepo groupPort.GroupRepository, interactionRepo interactionPort.InteractionRepository, snap *config.Snapshot) *PermissionService {
	return &PermissionService{
		GroupRepository:       groupRepo,
		InteractionRepository: interactionRepo,
		Snapshot:              snap,
	}
}

// CheckUserContentView rejects content beyond the viewer's date limit.
func (s *PermissionService) CheckUserContentView(createdAt time.Time, viewer *userEntity.User, now time.Time) error {
	limit := GetDateLimit(s.Snapshot, viewer, now)
	if limit != nil && createdAt.After(*limit) {
		return apperr.ErrContentExpired
	}
	return nil
}

// CheckGroupContentView enforces private group membership and the group's
// own retention bound for a single item.
func (s *PermissionService) CheckGroupContentView(ctx context.Context, createdAt time.Time, groupID, viewerID uint64) error {
	if groupID == 0 {
		return nil
	}

	g, err := s.GroupRepository.FindByID(ctx, groupID)
	if err != nil || g == nil {
		// A missing group does not hide its content; listing queries do
		// not join groups either.
		return nil
	}

	if g.IsPrivate {
		if viewerID == 0 {
			return apperr.ErrPrivateGroup
		}
		member, err := s.InteractionRepository.IsFollowing(ctx, viewerID, interactionEntity.KindGroup, groupID)
		if err != nil {
			return err
		}
		if !member {
			return apperr.ErrPrivateGroup
		}
	}

	if g.ContentDateLimit != nil && createdAt.After(*g.ContentDateLimit) {
		return apperr.ErrContentExpired
	}
	return nil
}
