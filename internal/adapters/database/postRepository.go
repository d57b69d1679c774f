package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rasana/internal/core/feed"
	geotagEntity "rasana/internal/core/geotag"
	postEntity "rasana/internal/core/post"
	userEntity "rasana/internal/core/user"
)

// PostRepositoryDatabase executes resolved feed plans against MySQL.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByFsid(ctx context.Context, fsid string) (*postEntity.Post, error) {
	var p postEntity.Post
	err := repo.db.WithContext(ctx).Preload("User").Where("fsid = ?", fsid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ExecutePlan translates the storage-agnostic plan into one filtered,
// ordered, paginated query plus a full count.
func (repo *PostRepositoryDatabase) ExecutePlan(ctx context.Context, plan *feed.Plan) ([]*postEntity.Post, int64, error) {
	q := repo.db.WithContext(ctx).Model(&postEntity.Post{})

	// Author must be enabled.
	enabledAuthors := repo.db.Model(&userEntity.User{}).Select("id").Where("is_enabled = ?", true)
	q = q.Where("user_id IN (?)", enabledAuthors)

	// Disabled content stays visible to its own author.
	if plan.ViewerID == 0 {
		q = q.Where("is_enabled = ?", true)
	} else {
		q = q.Where(repo.db.Where("is_enabled = ?", true).Or("user_id = ?", plan.ViewerID))
	}

	q = repo.applyExclusions(q, plan)
	q = repo.applyInclusions(q, plan)

	if plan.AllDigest {
		q = q.Where("digest_state <> ?", postEntity.DigestNo)
	} else if plan.DigestState != 0 {
		q = q.Where("digest_state = ?", plan.DigestState)
	}
	if plan.StickyState != 0 {
		q = q.Where("sticky_state = ?", plan.StickyState)
	}

	q = applyDateWindow(q, plan.CreatedAt)

	q = applyCounterRange(q, "view_count", plan.ViewCount)
	q = applyCounterRange(q, "like_count", plan.LikeCount)
	q = applyCounterRange(q, "dislike_count", plan.DislikeCount)
	q = applyCounterRange(q, "follow_count", plan.FollowCount)
	q = applyCounterRange(q, "block_count", plan.BlockCount)
	q = applyCounterRange(q, "comment_count", plan.CommentCount)

	q = repo.applyContentType(q, plan.ContentType)

	if plan.DateLimit != nil {
		q = q.Where("created_at <= ?", *plan.DateLimit)
	}

	if plan.SinceID != 0 {
		q = q.Where("id > ?", plan.SinceID)
	}
	if plan.BeforeID != 0 {
		q = q.Where("id < ?", plan.BeforeID)
	}

	if plan.Fanout != nil {
		q = repo.applyFanout(q, plan.Fanout)
	}

	if plan.Nearby != nil {
		q = repo.applyNearby(q, plan.Nearby)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	q = applyOrder(q, plan.Order)

	page := plan.Page
	if page < 1 {
		page = 1
	}
	q = q.Offset((page - 1) * plan.PageSize).Limit(plan.PageSize)

	var posts []*postEntity.Post
	if err := q.Preload("User").Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	return posts, total, nil
}

func (repo *PostRepositoryDatabase) applyExclusions(q *gorm.DB, plan *feed.Plan) *gorm.DB {
	if len(plan.ExcludeUserIDs) > 0 {
		q = q.Where("user_id NOT IN ?", plan.ExcludeUserIDs)
	}
	if len(plan.ExcludeGroupIDs) > 0 {
		q = q.Where("group_id NOT IN ?", plan.ExcludeGroupIDs)
	}
	if len(plan.ExcludeHashtagIDs) > 0 {
		// A post stays visible while it has no hashtags, or at least one
		// hashtag outside the blocked set.
		q = q.Where(
			"(NOT EXISTS (SELECT 1 FROM hashtag_usages WHERE hashtag_usages.post_id = posts.id) OR EXISTS (SELECT 1 FROM hashtag_usages WHERE hashtag_usages.post_id = posts.id AND hashtag_usages.hashtag_id NOT IN ?))",
			plan.ExcludeHashtagIDs,
		)
	}
	if len(plan.ExcludeGeotagIDs) > 0 {
		q = q.Where("geotag_id NOT IN ?", plan.ExcludeGeotagIDs)
	}
	if len(plan.ExcludePostIDs) > 0 {
		q = q.Where("id NOT IN ?", plan.ExcludePostIDs)
	}
	return q
}

func (repo *PostRepositoryDatabase) applyInclusions(q *gorm.DB, plan *feed.Plan) *gorm.DB {
	if plan.IncludeUserIDs != nil {
		q = q.Where("user_id IN ?", plan.IncludeUserIDs)
	}
	if plan.ExcludeAnonymous {
		q = q.Where("is_anonymous = ?", false)
	}
	if plan.IncludeGroupIDs != nil {
		q = q.Where("group_id IN ?", plan.IncludeGroupIDs)
	}
	if plan.IncludeHashtagIDs != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM hashtag_usages WHERE hashtag_usages.post_id = posts.id AND hashtag_usages.hashtag_id IN ?)",
			plan.IncludeHashtagIDs,
		)
	}
	if plan.IncludeGeotagIDs != nil {
		q = q.Where("geotag_id IN ?", plan.IncludeGeotagIDs)
	}
	return q
}

func (repo *PostRepositoryDatabase) applyContentType(q *gorm.DB, ct feed.ContentTypePlan) *gorm.DB {
	switch {
	case ct.TextOnly:
		q = q.Where("NOT EXISTS (SELECT 1 FROM file_usages WHERE file_usages.post_id = posts.id)")
		q = q.Where("NOT EXISTS (SELECT 1 FROM extend_usages WHERE extend_usages.post_id = posts.id)")
	case ct.FileType != 0:
		q = q.Where("EXISTS (SELECT 1 FROM file_usages WHERE file_usages.post_id = posts.id AND file_usages.file_type = ?)", ct.FileType)
	case ct.ExtendFskey != "":
		q = q.Where("EXISTS (SELECT 1 FROM extend_usages WHERE extend_usages.post_id = posts.id AND extend_usages.app_fskey = ?)", ct.ExtendFskey)
	}
	return q
}

// applyFanout unions the follow-graph reach into one OR group.
func (repo *PostRepositoryDatabase) applyFanout(q *gorm.DB, fanout *feed.FanoutPlan) *gorm.DB {
	var or *gorm.DB
	add := func(cond *gorm.DB) {
		if or == nil {
			or = cond
		} else {
			or = or.Or(cond)
		}
	}

	if len(fanout.UserIDs) > 0 {
		add(repo.db.Where("user_id IN ?", fanout.UserIDs))
	}
	if len(fanout.GroupIDs) > 0 {
		add(repo.db.Where("group_id IN ?", fanout.GroupIDs))
	}
	if len(fanout.HashtagIDs) > 0 {
		add(repo.db.Where(
			"EXISTS (SELECT 1 FROM hashtag_usages WHERE hashtag_usages.post_id = posts.id AND hashtag_usages.hashtag_id IN ?)",
			fanout.HashtagIDs,
		))
	}
	if len(fanout.GeotagIDs) > 0 {
		add(repo.db.Where("geotag_id IN ?", fanout.GeotagIDs))
	}
	if fanout.IncludeDigest {
		add(repo.db.Where("digest_state <> ?", postEntity.DigestNo))
	}

	if or == nil {
		// Defensive: the service never hands over an all-empty fan-out.
		return q.Where("1 = 0")
	}
	return q.Where(or)
}

// applyNearby restricts to posts whose geotag lies within the radius,
// via the engine's spherical distance primitive. POINT takes (lng, lat).
func (repo *PostRepositoryDatabase) applyNearby(q *gorm.DB, nearby *feed.NearbyPlan) *gorm.DB {
	geotags := repo.db.Model(&geotagEntity.Geotag{}).Select("id").Where(
		"ST_Distance_Sphere(POINT(map_longitude, map_latitude), POINT(?, ?)) <= ?",
		nearby.Longitude, nearby.Latitude, nearby.RadiusMeters,
	)
	return q.Where("geotag_id <> 0").Where("geotag_id IN (?)", geotags)
}

func (repo *PostRepositoryDatabase) HashtagIDsByPost(ctx context.Context, postIDs []uint64) (map[uint64][]uint64, error) {
	var usages []postEntity.HashtagUsage
	if err := repo.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&usages).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64][]uint64, len(postIDs))
	for _, u := range usages {
		out[u.PostID] = append(out[u.PostID], u.HashtagID)
	}
	return out, nil
}

// applyDateWindow applies half-open creation-time bounds.
func applyDateWindow(q *gorm.DB, w feed.DateWindow) *gorm.DB {
	if w.Gt != nil {
		q = q.Where("created_at >= ?", *w.Gt)
	}
	if w.Lt != nil {
		q = q.Where("created_at < ?", *w.Lt)
	}
	return q
}

func applyCounterRange(q *gorm.DB, column string, r feed.CounterRange) *gorm.DB {
	if r.Gt != nil {
		q = q.Where(column+" >= ?", *r.Gt)
	}
	if r.Lt != nil {
		q = q.Where(column+" <= ?", *r.Lt)
	}
	return q
}

// applyOrder maps the plan ordering to SQL. Every non-random ordering gets
// a secondary id sort in the same direction, so ties are stable across
// repeated calls within a cache window.
func applyOrder(q *gorm.DB, order feed.Order) *gorm.DB {
	if order.Random {
		return q.Order("RAND()")
	}

	dir := "DESC"
	if !order.Desc {
		dir = "ASC"
	}

	switch order.Column {
	case feed.OrderCommentTime:
		q = q.Order("COALESCE(last_comment_at, created_at) " + dir)
	case feed.OrderView:
		q = q.Order("view_count " + dir)
	case feed.OrderLike:
		q = q.Order("like_count " + dir)
	case feed.OrderDislike:
		q = q.Order("dislike_count " + dir)
	case feed.OrderFollow:
		q = q.Order("follow_count " + dir)
	case feed.OrderBlock:
		q = q.Order("block_count " + dir)
	case feed.OrderComment:
		q = q.Order("comment_count " + dir)
	default:
		q = q.Order("created_at " + dir)
	}

	return q.Order("id " + dir)
}
