package feedapp

import (
	"context"
	"time"

	"rasana/internal/core/content"
	"rasana/internal/core/feed"
	interactionEntity "rasana/internal/core/interaction"
	userEntity "rasana/internal/core/user"
	postPort "rasana/internal/ports/post"
)

// Timelines computes the fan-out feed across the viewer's follow graphs.
// Requires an authenticated viewer; there is no guest timeline.
func (s *FeedService) Timelines(ctx context.Context, viewer *userEntity.User, spec *feed.TimelineSpec) (*postPort.Page, error) {
	followType := spec.Type
	if followType == "" {
		followType = "all"
	}

	fanout, err := s.fanoutPlan(ctx, viewer.ID, followType)
	if err != nil {
		return nil, err
	}

	pageSize := s.pageSize(spec.PageSize)
	if fanout == nil {
		// The viewer follows nothing in the requested dimension: an empty
		// feed, not a filter warning.
		return &postPort.Page{List: []*postPort.PostDTO{}, Total: 0, PerPage: pageSize}, nil
	}

	now := time.Now()
	plan := &feed.Plan{
		ViewerID: viewer.ID,
		Page:     spec.Page,
		PageSize: pageSize,
		Fanout:   fanout,
	}

	if err := s.applyExclusions(ctx, plan, viewer.ID, &feed.ListSpec{}); err != nil {
		return nil, err
	}

	plan.ContentType = resolveContentType(spec.ContentType)
	plan.DateLimit = content.GetDateLimit(s.Snapshot, viewer, now)
	plan.Order = feed.Order{Column: feed.OrderCreatedTime, Desc: true}

	if err := s.applyCursors(ctx, plan, spec.SincePid, spec.BeforePid); err != nil {
		return nil, err
	}

	return s.executePostPlan(ctx, plan, followType)
}

// fanoutPlan loads the follow graphs the requested dimension unions over.
// Returns nil when every contributing graph is empty.
func (s *FeedService) fanoutPlan(ctx context.Context, viewerID uint64, followType string) (*feed.FanoutPlan, error) {
	fanout := &feed.FanoutPlan{}

	load := func(kind interactionEntity.Kind) ([]uint64, error) {
		return s.Blocks.FollowedIDs(ctx, viewerID, kind)
	}

	var err error
	switch followType {
	case "user":
		fanout.UserIDs, err = load(interactionEntity.KindUser)
	case "group":
		fanout.GroupIDs, err = load(interactionEntity.KindGroup)
	case "hashtag":
		fanout.HashtagIDs, err = load(interactionEntity.KindHashtag)
	case "geotag":
		fanout.GeotagIDs, err = load(interactionEntity.KindGeotag)
	default: // all
		if fanout.UserIDs, err = load(interactionEntity.KindUser); err != nil {
			return nil, err
		}
		if fanout.GroupIDs, err = load(interactionEntity.KindGroup); err != nil {
			return nil, err
		}
		if fanout.HashtagIDs, err = load(interactionEntity.KindHashtag); err != nil {
			return nil, err
		}
		fanout.GeotagIDs, err = load(interactionEntity.KindGeotag)
		fanout.IncludeDigest = true
	}
	if err != nil {
		return nil, err
	}

	if !fanout.IncludeDigest &&
		len(fanout.UserIDs) == 0 && len(fanout.GroupIDs) == 0 &&
		len(fanout.HashtagIDs) == 0 && len(fanout.GeotagIDs) == 0 {
		return nil, nil
	}
	return fanout, nil
}
