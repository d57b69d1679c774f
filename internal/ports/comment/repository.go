package comment

import (
	"context"

	commentEntity "rasana/internal/core/comment"
	"rasana/internal/core/feed"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *commentEntity.Comment) (*commentEntity.Comment, error)
	FindByFsid(ctx context.Context, fsid string) (*commentEntity.Comment, error)
	// ExecutePlan reuses the feed plan dimensions that apply to comments:
	// author/comment exclusions, counter ranges, date windows, ordering
	// and cursors. PostID scoping rides in via IncludePostIDs.
	ExecutePlan(ctx context.Context, plan *feed.Plan, postIDs []uint64) ([]*commentEntity.Comment, int64, error)
}

type CommentDTO struct {
	Cid     string `json:"cid"`
	Pid     string `json:"pid"`
	Content string `json:"content"`

	Uid      string `json:"uid,omitempty"`
	Username string `json:"username,omitempty"`

	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
	CommentCount int64 `json:"commentCount"`

	CreatedAt string `json:"createdAt"`
}

type Page struct {
	List    []*CommentDTO `json:"list"`
	Total   int64         `json:"total"`
	PerPage int           `json:"perPage"`
}
