package post

import (
	"context"

	"rasana/internal/core/feed"
	postEntity "rasana/internal/core/post"
)

// PostRepository persists posts and executes resolved feed plans.
type PostRepository interface {
	Create(ctx context.Context, post *postEntity.Post) (*postEntity.Post, error)
	FindByFsid(ctx context.Context, fsid string) (*postEntity.Post, error)
	// ExecutePlan runs the plan and returns one page plus the full
	// filtered count.
	ExecutePlan(ctx context.Context, plan *feed.Plan) ([]*postEntity.Post, int64, error)
	// HashtagIDsByPost returns the hashtag ids attached to each post id.
	HashtagIDsByPost(ctx context.Context, postIDs []uint64) (map[uint64][]uint64, error)
}

// PostDTO is the enriched per-item payload listings return.
type PostDTO struct {
	Pid     string `json:"pid"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`

	Uid      string `json:"uid,omitempty"`
	Username string `json:"username,omitempty"`

	GroupFsid  string `json:"gid,omitempty"`
	GeotagFsid string `json:"gtid,omitempty"`

	DigestState int `json:"digestState"`
	StickyState int `json:"stickyState"`

	ViewCount    int64 `json:"viewCount"`
	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
	FollowCount  int64 `json:"followCount"`
	BlockCount   int64 `json:"blockCount"`
	CommentCount int64 `json:"commentCount"`

	CreatedAt string `json:"createdAt"`

	// Which follow dimension surfaced the item; timelines only.
	ContentSource string `json:"contentSource,omitempty"`
}

// Page is the listing response shape: one full page or nothing.
type Page struct {
	List    []*PostDTO `json:"list"`
	Total   int64      `json:"total"`
	PerPage int        `json:"perPage"`
}
