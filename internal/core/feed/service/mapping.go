package feedapp

import (
	"context"
	"fmt"
	"time"

	"rasana/internal/core/feed"
	interactionEntity "rasana/internal/core/interaction"
	postEntity "rasana/internal/core/post"
	postPort "rasana/internal/ports/post"
)

// executePostPlan runs the plan and enriches the page. followType is empty
// for plain listings; timelines pass their follow dimension so each item
// gets a contentSource tag.
func (s *FeedService) executePostPlan(ctx context.Context, plan *feed.Plan, followType string) (*postPort.Page, error) {
	posts, total, err := s.PostRepository.ExecutePlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("executing post plan: %w", err)
	}

	page := &postPort.Page{
		List:    make([]*postPort.PostDTO, 0, len(posts)),
		Total:   total,
		PerPage: plan.PageSize,
	}
	if len(posts) == 0 {
		return page, nil
	}

	groupFsids, geotagFsids, err := s.resolveRefFsids(ctx, posts)
	if err != nil {
		return nil, err
	}

	var hashtagsByPost map[uint64][]uint64
	if followType == "all" {
		// Source tagging needs the hashtag dimension; fetch it once for
		// the page.
		ids := make([]uint64, 0, len(posts))
		for _, p := range posts {
			ids = append(ids, p.ID)
		}
		hashtagsByPost, err = s.PostRepository.HashtagIDsByPost(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	for _, p := range posts {
		dto := postDTO(p, groupFsids, geotagFsids)
		if followType != "" {
			dto.ContentSource = feed.ResolveContentSource(followType, p, plan.Fanout, hashtagsByPost[p.ID])
		}
		page.List = append(page.List, dto)
	}

	return page, nil
}

func (s *FeedService) resolveRefFsids(ctx context.Context, posts []*postEntity.Post) (map[uint64]string, map[uint64]string, error) {
	var groupIDs, geotagIDs []uint64
	for _, p := range posts {
		if p.GroupID != 0 {
			groupIDs = append(groupIDs, p.GroupID)
		}
		if p.GeotagID != 0 {
			geotagIDs = append(geotagIDs, p.GeotagID)
		}
	}

	groupFsids := map[uint64]string{}
	if len(groupIDs) > 0 {
		var err error
		groupFsids, err = s.PrimaryRepository.FsidsByIDs(ctx, interactionEntity.KindGroup, groupIDs)
		if err != nil {
			return nil, nil, err
		}
	}

	geotagFsids := map[uint64]string{}
	if len(geotagIDs) > 0 {
		var err error
		geotagFsids, err = s.PrimaryRepository.FsidsByIDs(ctx, interactionEntity.KindGeotag, geotagIDs)
		if err != nil {
			return nil, nil, err
		}
	}

	return groupFsids, geotagFsids, nil
}

func postDTO(p *postEntity.Post, groupFsids, geotagFsids map[uint64]string) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		Pid:          p.Fsid,
		Title:        p.Title,
		Content:      p.Content,
		GroupFsid:    groupFsids[p.GroupID],
		GeotagFsid:   geotagFsids[p.GeotagID],
		DigestState:  p.DigestState,
		StickyState:  p.StickyState,
		ViewCount:    p.ViewCount,
		LikeCount:    p.LikeCount,
		DislikeCount: p.DislikeCount,
		FollowCount:  p.FollowCount,
		BlockCount:   p.BlockCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}

	// Anonymous authorship hides the author from the payload.
	if !p.IsAnonymous {
		dto.Uid = p.User.Fsid
		dto.Username = p.User.Username
	}

	return dto
}
