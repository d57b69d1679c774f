package feed

// ListSpec carries the raw, validated listing parameters. Request scoped,
// never persisted.
type ListSpec struct {
	// Inclusion scopes: comma-separated fsid specs, AND-combined.
	Users    string `form:"users"`
	Groups   string `form:"groups"`
	Hashtags string `form:"hashtags"`
	Geotags  string `form:"geotags"`

	IncludeSubgroups bool `form:"includeSubgroups"`

	// Viewer-supplied exclusions, merged with block-derived exclusions.
	BlockUsers    string `form:"blockUsers"`
	BlockGroups   string `form:"blockGroups"`
	BlockHashtags string `form:"blockHashtags"`
	BlockGeotags  string `form:"blockGeotags"`
	BlockPosts    string `form:"blockPosts"`

	AllDigest   bool `form:"allDigest"`
	DigestState int  `form:"digestState" binding:"omitempty,oneof=1 2 3"`
	StickyState int  `form:"stickyState" binding:"omitempty,oneof=1 2 3"`

	// Named bucket, mutually exclusive with createdDays and the explicit
	// gt/lt pair; the bucket wins when both are sent.
	CreatedDate   string `form:"createdDate" binding:"omitempty,oneof=today yesterday week lastWeek month lastMonth year lastYear"`
	CreatedDays   int    `form:"createdDays"`
	CreatedDateGt string `form:"createdDateGt" binding:"omitempty,datetime=2006-01-02"`
	CreatedDateLt string `form:"createdDateLt" binding:"omitempty,datetime=2006-01-02"`

	ViewCountGt    *int64 `form:"viewCountGt"`
	ViewCountLt    *int64 `form:"viewCountLt"`
	LikeCountGt    *int64 `form:"likeCountGt"`
	LikeCountLt    *int64 `form:"likeCountLt"`
	DislikeCountGt *int64 `form:"dislikeCountGt"`
	DislikeCountLt *int64 `form:"dislikeCountLt"`
	FollowCountGt  *int64 `form:"followCountGt"`
	FollowCountLt  *int64 `form:"followCountLt"`
	BlockCountGt   *int64 `form:"blockCountGt"`
	BlockCountLt   *int64 `form:"blockCountLt"`
	CommentCountGt *int64 `form:"commentCountGt"`
	CommentCountLt *int64 `form:"commentCountLt"`

	// "All", "Text", a file type name (Image/Video/Audio/Document), or a
	// plugin fskey.
	ContentType string `form:"contentType"`

	OrderType      string `form:"orderType" binding:"omitempty,oneof=random createdTime commentTime view like dislike follow block comment"`
	OrderDirection string `form:"orderDirection" binding:"omitempty,oneof=asc desc"`

	// Cursor bounds, alternatives to offset pagination.
	SincePid  string `form:"sincePid"`
	BeforePid string `form:"beforePid"`

	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1"`
}

// NearbySpec narrows a listing to content around a point.
type NearbySpec struct {
	MapLng float64 `form:"mapLng" binding:"required,min=-180,max=180"`
	MapLat float64 `form:"mapLat" binding:"required,min=-90,max=90"`
	// Radius in the given unit; zero falls back to the configured default.
	Length float64 `form:"length" binding:"omitempty,gt=0"`
	Unit   string  `form:"unit" binding:"omitempty,oneof=km mi"`

	ContentType string `form:"contentType"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"pageSize" binding:"omitempty,min=1"`
}

// TimelineSpec selects a follow dimension for the fan-out feed.
type TimelineSpec struct {
	Type string `form:"type" binding:"omitempty,oneof=user group hashtag geotag all"`

	ContentType string `form:"contentType"`
	SincePid    string `form:"sincePid"`
	BeforePid   string `form:"beforePid"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"pageSize" binding:"omitempty,min=1"`
}

// CommentListSpec lists comments, scoped to a post and/or authors.
type CommentListSpec struct {
	Pid   string `form:"pid"`
	Users string `form:"users"`

	BlockUsers    string `form:"blockUsers"`
	BlockComments string `form:"blockComments"`

	CreatedDate   string `form:"createdDate" binding:"omitempty,oneof=today yesterday week lastWeek month lastMonth year lastYear"`
	CreatedDays   int    `form:"createdDays"`
	CreatedDateGt string `form:"createdDateGt" binding:"omitempty,datetime=2006-01-02"`
	CreatedDateLt string `form:"createdDateLt" binding:"omitempty,datetime=2006-01-02"`

	LikeCountGt    *int64 `form:"likeCountGt"`
	LikeCountLt    *int64 `form:"likeCountLt"`
	DislikeCountGt *int64 `form:"dislikeCountGt"`
	DislikeCountLt *int64 `form:"dislikeCountLt"`
	CommentCountGt *int64 `form:"commentCountGt"`
	CommentCountLt *int64 `form:"commentCountLt"`

	OrderType      string `form:"orderType" binding:"omitempty,oneof=random createdTime like dislike comment"`
	OrderDirection string `form:"orderDirection" binding:"omitempty,oneof=asc desc"`

	SinceCid  string `form:"sinceCid"`
	BeforeCid string `form:"beforeCid"`

	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1"`
}
