package feedapp

import (
	"context"
	"time"

	"rasana/internal/apperr"
	postEntity "rasana/internal/core/post"
	userEntity "rasana/internal/core/user"
	postPort "rasana/internal/ports/post"
)

// GetPostDetail loads one post and applies the same visibility rules the
// listing predicates encode: author enabled, content enabled or authored by
// the viewer, viewer date limit, group privacy.
func (s *FeedService) GetPostDetail(ctx context.Context, viewer *userEntity.User, pid string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByFsid(ctx, pid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrPostNotFound
	}

	var viewerID uint64
	if viewer != nil {
		viewerID = viewer.ID
	}

	if p.User.ID == 0 || !p.User.IsEnabled {
		return nil, apperr.ErrAuthorDisabled
	}
	if !p.IsEnabled && p.UserID != viewerID {
		return nil, apperr.ErrPostDisabled
	}

	now := time.Now()
	if err := s.Permissions.CheckUserContentView(p.CreatedAt, viewer, now); err != nil {
		return nil, err
	}
	if err := s.Permissions.CheckGroupContentView(ctx, p.CreatedAt, p.GroupID, viewerID); err != nil {
		return nil, err
	}

	groupFsids, geotagFsids, err := s.resolveRefFsids(ctx, []*postEntity.Post{p})
	if err != nil {
		return nil, err
	}
	return postDTO(p, groupFsids, geotagFsids), nil
}
