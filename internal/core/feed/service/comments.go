package feedapp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rasana/internal/apperr"
	"rasana/internal/core/content"
	"rasana/internal/core/feed"
	interactionEntity "rasana/internal/core/interaction"
	userEntity "rasana/internal/core/user"
	"rasana/internal/ports/cache"
	commentPort "rasana/internal/ports/comment"
)

// ListComments lists comments through the same assembler dimensions that
// apply to them: author and comment exclusions, counter ranges, temporal
// windows, ordering, cursors. A pid scopes the listing to one post after
// that post passes the usual visibility checks.
func (s *FeedService) ListComments(ctx context.Context, viewer *userEntity.User, spec *feed.CommentListSpec, rawParams map[string]string) (*commentPort.Page, error) {
	var viewerID uint64
	if viewer != nil {
		viewerID = viewer.ID
	}

	cacheKey := fmt.Sprintf("feed_comment_list_%s_guest", feed.Fingerprint(rawParams))
	if viewerID == 0 {
		var cached commentPort.Page
		hit, err := s.Cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			return &cached, nil
		}
	}

	now := time.Now()
	plan := &feed.Plan{
		ViewerID: viewerID,
		Page:     spec.Page,
		PageSize: s.pageSize(spec.PageSize),
	}

	var postIDs []uint64
	if spec.Pid != "" {
		p, err := s.PostRepository.FindByFsid(ctx, spec.Pid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.ErrPostNotFound
		}
		if !p.IsEnabled && p.UserID != viewerID {
			return nil, apperr.ErrPostDisabled
		}
		if err := s.Permissions.CheckUserContentView(p.CreatedAt, viewer, now); err != nil {
			return nil, err
		}
		if err := s.Permissions.CheckGroupContentView(ctx, p.CreatedAt, p.GroupID, viewerID); err != nil {
			return nil, err
		}
		postIDs = []uint64{p.ID}
	}

	suppliedUsers, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindUser, spec.BlockUsers)
	if err != nil {
		return nil, err
	}
	suppliedComments, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindComment, spec.BlockComments)
	if err != nil {
		return nil, err
	}
	blockedUsers, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindUser)
	if err != nil {
		return nil, err
	}
	blockedComments, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindComment)
	if err != nil {
		return nil, err
	}
	plan.ExcludeUserIDs = mergeIDs(suppliedUsers, blockedUsers)
	plan.ExcludeCommentIDs = mergeIDs(suppliedComments, blockedComments)

	if spec.Users != "" {
		expansion, err := s.Expander.Expand(ctx, interactionEntity.KindUser, spec.Users, 0, false)
		if err != nil {
			return nil, err
		}
		if expansion.Count == 0 {
			return nil, apperr.ErrEmptyUserFilter
		}
		plan.IncludeUserIDs = expansion.IDs
		plan.ExcludeAnonymous = true
	}

	plan.CreatedAt = feed.ResolveDateWindow(spec.CreatedDate, spec.CreatedDays, spec.CreatedDateGt, spec.CreatedDateLt, now)
	plan.LikeCount = feed.CounterRange{Gt: spec.LikeCountGt, Lt: spec.LikeCountLt}
	plan.DislikeCount = feed.CounterRange{Gt: spec.DislikeCountGt, Lt: spec.DislikeCountLt}
	plan.CommentCount = feed.CounterRange{Gt: spec.CommentCountGt, Lt: spec.CommentCountLt}
	plan.DateLimit = content.GetDateLimit(s.Snapshot, viewer, now)
	plan.Order = resolveOrder(spec.OrderType, spec.OrderDirection)

	if spec.SinceCid != "" {
		id, err := s.Expander.ResolveID(ctx, interactionEntity.KindComment, spec.SinceCid)
		if err != nil {
			return nil, err
		}
		plan.SinceID = id
	}
	if spec.BeforeCid != "" {
		id, err := s.Expander.ResolveID(ctx, interactionEntity.KindComment, spec.BeforeCid)
		if err != nil {
			return nil, err
		}
		plan.BeforeID = id
	}

	comments, total, err := s.CommentRepository.ExecutePlan(ctx, plan, postIDs)
	if err != nil {
		return nil, fmt.Errorf("executing comment plan: %w", err)
	}

	page := &commentPort.Page{
		List:    make([]*commentPort.CommentDTO, 0, len(comments)),
		Total:   total,
		PerPage: plan.PageSize,
	}

	var parentIDs []uint64
	for _, c := range comments {
		parentIDs = append(parentIDs, c.PostID)
	}
	postFsids := map[uint64]string{}
	if len(parentIDs) > 0 {
		postFsids, err = s.PrimaryRepository.FsidsByIDs(ctx, interactionEntity.KindPost, parentIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, c := range comments {
		dto := &commentPort.CommentDTO{
			Cid:          c.Fsid,
			Pid:          postFsids[c.PostID],
			Content:      c.Content,
			LikeCount:    c.LikeCount,
			DislikeCount: c.DislikeCount,
			CommentCount: c.CommentCount,
			CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		}
		if !c.IsAnonymous {
			dto.Uid = c.User.Fsid
			dto.Username = c.User.Username
		}
		page.List = append(page.List, dto)
	}

	if viewerID == 0 {
		if err := s.Cache.PutJSON(ctx, cacheKey, page, cache.TagLists, s.Snapshot.GuestCacheTTL); err != nil {
			s.Logger.Warn("guest comment cache write failed", zap.Error(err))
		}
	}

	return page, nil
}
