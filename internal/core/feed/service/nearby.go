package feedapp

import (
	"context"
	"fmt"
	"time"

	"rasana/internal/core/content"
	"rasana/internal/core/feed"
	userEntity "rasana/internal/core/user"
	postPort "rasana/internal/ports/post"
)

// Miles to kilometers. The nearby radius is normalized to km, then meters.
const miToKm = 1.609

// NearbyPosts lists content whose geotag lies within the requested radius
// of the given point. Content without a geotag never appears.
func (s *FeedService) NearbyPosts(ctx context.Context, viewer *userEntity.User, spec *feed.NearbySpec, rawParams map[string]string) (*postPort.Page, error) {
	var viewerID uint64
	if viewer != nil {
		viewerID = viewer.ID
	}

	cacheKey := fmt.Sprintf("feed_post_nearby_%s_guest", feed.Fingerprint(rawParams))
	if page := s.getCachedPage(ctx, viewerID, cacheKey); page != nil {
		return page, nil
	}

	now := time.Now()
	plan := &feed.Plan{
		ViewerID: viewerID,
		Page:     spec.Page,
		PageSize: s.pageSize(spec.PageSize),
	}

	if err := s.applyExclusions(ctx, plan, viewerID, &feed.ListSpec{}); err != nil {
		return nil, err
	}

	plan.ContentType = resolveContentType(spec.ContentType)
	plan.DateLimit = content.GetDateLimit(s.Snapshot, viewer, now)
	plan.Order = feed.Order{Column: feed.OrderCreatedTime, Desc: true}
	plan.Nearby = s.nearbyPlan(spec)

	page, err := s.executePostPlan(ctx, plan, "")
	if err != nil {
		return nil, err
	}

	s.putCachedPage(ctx, viewerID, cacheKey, page)
	return page, nil
}

// nearbyPlan normalizes unit and radius. Defaults come from the injected
// snapshot; miles convert to kilometers before the meter scaling.
func (s *FeedService) nearbyPlan(spec *feed.NearbySpec) *feed.NearbyPlan {
	unit := spec.Unit
	if unit == "" {
		unit = s.Snapshot.DefaultLengthUnit
	}

	length := spec.Length
	if length <= 0 {
		switch unit {
		case "mi":
			length = s.Snapshot.NearbyLengthMi
		default:
			length = s.Snapshot.NearbyLengthKm
		}
	}

	lengthKm := length
	if unit == "mi" {
		lengthKm = length * miToKm
	}

	return &feed.NearbyPlan{
		Latitude:     spec.MapLat,
		Longitude:    spec.MapLng,
		RadiusMeters: lengthKm * 1000,
	}
}
