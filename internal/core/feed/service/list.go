package feedapp

import (
	"context"
	"fmt"
	"time"

	"rasana/internal/apperr"
	"rasana/internal/core/content"
	"rasana/internal/core/feed"
	interactionEntity "rasana/internal/core/interaction"
	postEntity "rasana/internal/core/post"
	userEntity "rasana/internal/core/user"
	postPort "rasana/internal/ports/post"
)

// ListPosts runs the full filtering pipeline for the post list endpoint.
// rawParams is the flattened request parameter set; it keys the guest
// result cache. viewer is nil for guests.
func (s *FeedService) ListPosts(ctx context.Context, viewer *userEntity.User, spec *feed.ListSpec, rawParams map[string]string) (*postPort.Page, error) {
	var viewerID uint64
	if viewer != nil {
		viewerID = viewer.ID
	}

	cacheKey := fmt.Sprintf("feed_post_list_%s_guest", feed.Fingerprint(rawParams))
	if page := s.getCachedPage(ctx, viewerID, cacheKey); page != nil {
		return page, nil
	}

	plan, err := s.buildListPlan(ctx, viewer, spec, time.Now())
	if err != nil {
		return nil, err
	}

	page, err := s.executePostPlan(ctx, plan, "")
	if err != nil {
		return nil, err
	}

	s.putCachedPage(ctx, viewerID, cacheKey, page)
	return page, nil
}

// buildListPlan is the query assembler: it folds block sets, id-list
// expansions, content filters, ordering and pagination into one plan.
func (s *FeedService) buildListPlan(ctx context.Context, viewer *userEntity.User, spec *feed.ListSpec, now time.Time) (*feed.Plan, error) {
	var viewerID uint64
	if viewer != nil {
		viewerID = viewer.ID
	}

	plan := &feed.Plan{
		ViewerID: viewerID,
		Page:     spec.Page,
		PageSize: s.pageSize(spec.PageSize),
	}

	if err := s.applyExclusions(ctx, plan, viewerID, spec); err != nil {
		return nil, err
	}

	groupDateLimit, err := s.applyInclusions(ctx, plan, viewerID, spec)
	if err != nil {
		return nil, err
	}

	plan.AllDigest = spec.AllDigest
	if !spec.AllDigest {
		plan.DigestState = spec.DigestState
	}
	plan.StickyState = spec.StickyState

	plan.CreatedAt = feed.ResolveDateWindow(spec.CreatedDate, spec.CreatedDays, spec.CreatedDateGt, spec.CreatedDateLt, now)

	plan.ViewCount = feed.CounterRange{Gt: spec.ViewCountGt, Lt: spec.ViewCountLt}
	plan.LikeCount = feed.CounterRange{Gt: spec.LikeCountGt, Lt: spec.LikeCountLt}
	plan.DislikeCount = feed.CounterRange{Gt: spec.DislikeCountGt, Lt: spec.DislikeCountLt}
	plan.FollowCount = feed.CounterRange{Gt: spec.FollowCountGt, Lt: spec.FollowCountLt}
	plan.BlockCount = feed.CounterRange{Gt: spec.BlockCountGt, Lt: spec.BlockCountLt}
	plan.CommentCount = feed.CounterRange{Gt: spec.CommentCountGt, Lt: spec.CommentCountLt}

	plan.ContentType = resolveContentType(spec.ContentType)

	// Group-specific retention overrides the viewer-level limit.
	if groupDateLimit != nil {
		plan.DateLimit = groupDateLimit
	} else {
		plan.DateLimit = content.GetDateLimit(s.Snapshot, viewer, now)
	}

	plan.Order = resolveOrder(spec.OrderType, spec.OrderDirection)

	if err := s.applyCursors(ctx, plan, spec.SincePid, spec.BeforePid); err != nil {
		return nil, err
	}

	return plan, nil
}

// applyExclusions merges viewer-supplied block lists with block-derived
// exclusion sets across the five dimensions. Guests still inherit the
// private-group exclusion set.
func (s *FeedService) applyExclusions(ctx context.Context, plan *feed.Plan, viewerID uint64, spec *feed.ListSpec) error {
	suppliedUsers, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindUser, spec.BlockUsers)
	if err != nil {
		return err
	}
	suppliedGroups, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindGroup, spec.BlockGroups)
	if err != nil {
		return err
	}
	suppliedHashtags, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindHashtag, spec.BlockHashtags)
	if err != nil {
		return err
	}
	suppliedGeotags, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindGeotag, spec.BlockGeotags)
	if err != nil {
		return err
	}
	suppliedPosts, err := s.Expander.ExplodeIDs(ctx, interactionEntity.KindPost, spec.BlockPosts)
	if err != nil {
		return err
	}

	blockedUsers, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindUser)
	if err != nil {
		return err
	}
	blockedGroups, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindGroup)
	if err != nil {
		return err
	}
	blockedHashtags, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindHashtag)
	if err != nil {
		return err
	}
	blockedGeotags, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindGeotag)
	if err != nil {
		return err
	}
	blockedPosts, err := s.Blocks.ResolveBlocked(ctx, viewerID, interactionEntity.KindPost)
	if err != nil {
		return err
	}

	plan.ExcludeUserIDs = mergeIDs(suppliedUsers, blockedUsers)
	plan.ExcludeGroupIDs = mergeIDs(suppliedGroups, blockedGroups)
	plan.ExcludeHashtagIDs = mergeIDs(suppliedHashtags, blockedHashtags)
	plan.ExcludeGeotagIDs = mergeIDs(suppliedGeotags, blockedGeotags)
	plan.ExcludePostIDs = mergeIDs(suppliedPosts, blockedPosts)
	return nil
}

// applyInclusions resolves the four inclusion scopes. A scope that resolves
// to zero ids aborts with its warning code; the main query never runs.
// The returned time is the strictest group retention bound, if any.
func (s *FeedService) applyInclusions(ctx context.Context, plan *feed.Plan, viewerID uint64, spec *feed.ListSpec) (*time.Time, error) {
	if spec.Users != "" {
		if !s.Snapshot.ProfilePostsEnabled {
			return nil, apperr.ErrProfilePostsOff
		}
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

	var groupDateLimit *time.Time
	if spec.Groups != "" {
		expansion, err := s.Expander.Expand(ctx, interactionEntity.KindGroup, spec.Groups, viewerID, spec.IncludeSubgroups)
		if err != nil {
			return nil, err
		}
		if expansion.Count == 0 {
			return nil, apperr.ErrEmptyGroupFilter
		}
		plan.IncludeGroupIDs = expansion.IDs
		groupDateLimit = expansion.DateLimit
	}

	if spec.Hashtags != "" {
		expansion, err := s.Expander.Expand(ctx, interactionEntity.KindHashtag, spec.Hashtags, 0, false)
		if err != nil {
			return nil, err
		}
		if expansion.Count == 0 {
			return nil, apperr.ErrEmptyHashtagFilter
		}
		plan.IncludeHashtagIDs = expansion.IDs
	}

	if spec.Geotags != "" {
		expansion, err := s.Expander.Expand(ctx, interactionEntity.KindGeotag, spec.Geotags, 0, false)
		if err != nil {
			return nil, err
		}
		if expansion.Count == 0 {
			return nil, apperr.ErrEmptyGeotagFilter
		}
		plan.IncludeGeotagIDs = expansion.IDs
	}

	return groupDateLimit, nil
}

// applyCursors resolves since/before fsids to strict primary id bounds.
// An fsid that matches nothing leaves its bound unset, like any other
// unmatched optional filter.
func (s *FeedService) applyCursors(ctx context.Context, plan *feed.Plan, sincePid, beforePid string) error {
	if sincePid != "" {
		id, err := s.Expander.ResolveID(ctx, interactionEntity.KindPost, sincePid)
		if err != nil {
			return err
		}
		plan.SinceID = id
	}
	if beforePid != "" {
		id, err := s.Expander.ResolveID(ctx, interactionEntity.KindPost, beforePid)
		if err != nil {
			return err
		}
		plan.BeforeID = id
	}
	return nil
}

func resolveContentType(contentType string) feed.ContentTypePlan {
	switch contentType {
	case "", "All":
		return feed.ContentTypePlan{}
	case "Text":
		return feed.ContentTypePlan{TextOnly: true}
	case "Image":
		return feed.ContentTypePlan{FileType: postEntity.FileTypeImage}
	case "Video":
		return feed.ContentTypePlan{FileType: postEntity.FileTypeVideo}
	case "Audio":
		return feed.ContentTypePlan{FileType: postEntity.FileTypeAudio}
	case "Document":
		return feed.ContentTypePlan{FileType: postEntity.FileTypeDocument}
	}
	// Anything else names a plugin extension key.
	return feed.ContentTypePlan{ExtendFskey: contentType}
}

// resolveOrder maps the order parameters onto the plan. Unknown or empty
// values fall back to newest first.
func resolveOrder(orderType, orderDirection string) feed.Order {
	if orderType == feed.OrderRandom {
		return feed.Order{Random: true}
	}

	column := orderType
	switch orderType {
	case feed.OrderCreatedTime, feed.OrderCommentTime, feed.OrderView, feed.OrderLike,
		feed.OrderDislike, feed.OrderFollow, feed.OrderBlock, feed.OrderComment:
	default:
		column = feed.OrderCreatedTime
	}

	return feed.Order{Column: column, Desc: orderDirection != "asc"}
}
