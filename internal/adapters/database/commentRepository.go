package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	commentEntity "rasana/internal/core/comment"
	"rasana/internal/core/feed"
	userEntity "rasana/internal/core/user"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *commentEntity.Comment) (*commentEntity.Comment, error) {
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByFsid(ctx context.Context, fsid string) (*commentEntity.Comment, error) {
	var c commentEntity.Comment
	err := repo.db.WithContext(ctx).Preload("User").Where("fsid = ?", fsid).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExecutePlan applies the plan dimensions that carry over to comments.
// postIDs, when non-empty, scopes the listing to those posts.
func (repo *CommentRepositoryDatabase) ExecutePlan(ctx context.Context, plan *feed.Plan, postIDs []uint64) ([]*commentEntity.Comment, int64, error) {
	q := repo.db.WithContext(ctx).Model(&commentEntity.Comment{})

	enabledAuthors := repo.db.Model(&userEntity.User{}).Select("id").Where("is_enabled = ?", true)
	q = q.Where("user_id IN (?)", enabledAuthors)

	if plan.ViewerID == 0 {
		q = q.Where("is_enabled = ?", true)
	} else {
		q = q.Where(repo.db.Where("is_enabled = ?", true).Or("user_id = ?", plan.ViewerID))
	}

	if len(postIDs) > 0 {
		q = q.Where("post_id IN ?", postIDs)
	}

	if len(plan.ExcludeUserIDs) > 0 {
		q = q.Where("user_id NOT IN ?", plan.ExcludeUserIDs)
	}
	if len(plan.ExcludeCommentIDs) > 0 {
		q = q.Where("id NOT IN ?", plan.ExcludeCommentIDs)
	}

	if plan.IncludeUserIDs != nil {
		q = q.Where("user_id IN ?", plan.IncludeUserIDs)
	}
	if plan.ExcludeAnonymous {
		q = q.Where("is_anonymous = ?", false)
	}

	q = applyDateWindow(q, plan.CreatedAt)
	q = applyCounterRange(q, "like_count", plan.LikeCount)
	q = applyCounterRange(q, "dislike_count", plan.DislikeCount)
	q = applyCounterRange(q, "comment_count", plan.CommentCount)

	if plan.DateLimit != nil {
		q = q.Where("created_at <= ?", *plan.DateLimit)
	}

	if plan.SinceID != 0 {
		q = q.Where("id > ?", plan.SinceID)
	}
	if plan.BeforeID != 0 {
		q = q.Where("id < ?", plan.BeforeID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting comments: %w", err)
	}

	q = applyCommentOrder(q, plan.Order)

	page := plan.Page
	if page < 1 {
		page = 1
	}
	q = q.Offset((page - 1) * plan.PageSize).Limit(plan.PageSize)

	var comments []*commentEntity.Comment
	if err := q.Preload("User").Find(&comments).Error; err != nil {
		return nil, 0, fmt.Errorf("listing comments: %w", err)
	}
	return comments, total, nil
}

// Comments carry fewer counters than posts, so unsupported ordering
// columns fall back to creation time.
func applyCommentOrder(q *gorm.DB, order feed.Order) *gorm.DB {
	if order.Random {
		return q.Order("RAND()")
	}

	dir := "DESC"
	if !order.Desc {
		dir = "ASC"
	}

	switch order.Column {
	case feed.OrderLike:
		q = q.Order("like_count " + dir)
	case feed.OrderDislike:
		q = q.Order("dislike_count " + dir)
	case feed.OrderComment:
		q = q.Order("comment_count " + dir)
	default:
		q = q.Order("created_at " + dir)
	}

	return q.Order("id " + dir)
}
