package feed

import "time"

// Order columns. commentTime is special-cased by the executor as
// COALESCE(last_comment_at, created_at).
const (
	OrderRandom      = "random"
	OrderCreatedTime = "createdTime"
	OrderCommentTime = "commentTime"
	OrderView        = "view"
	OrderLike        = "like"
	OrderDislike     = "dislike"
	OrderFollow      = "follow"
	OrderBlock       = "block"
	OrderComment     = "comment"
)

// Order is the resolved ordering rule.
type Order struct {
	Random bool
	// Column is a validated content table column name.
	Column string
	Desc   bool
}

// CounterRange is an optional closed range on one counter column.
type CounterRange struct {
	Gt *int64
	Lt *int64
}

// DateWindow is a resolved half-open or closed creation-time window.
// Nil bounds are unbounded.
type DateWindow struct {
	Gt *time.Time
	Lt *time.Time
}

// ContentTypePlan is the resolved content-type predicate.
type ContentTypePlan struct {
	// TextOnly demands no file usages and no extend usages.
	TextOnly bool
	// FileType, when nonzero, demands a file usage of that type.
	FileType int
	// ExtendFskey, when set, demands an extend usage tagged with the key.
	ExtendFskey string
}

// NearbyPlan restricts to content whose geotag lies within RadiusMeters of
// the point. Content without a geotag is excluded.
type NearbyPlan struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// FanoutPlan unions content reachable through the viewer's follow-graphs.
// Empty slices contribute nothing; IncludeDigest additionally surfaces
// digest-promoted content outside the follow graphs.
type FanoutPlan struct {
	UserIDs       []uint64
	GroupIDs      []uint64
	HashtagIDs    []uint64
	GeotagIDs     []uint64
	IncludeDigest bool
}

// Plan is the fully resolved, storage-agnostic query plan the assembler
// hands to the executor. All fsids and block sets are already resolved to
// primary ids; the executor only translates predicates.
type Plan struct {
	// Zero means guest: only enabled content is visible and no cache bypass
	// happens upstream.
	ViewerID uint64

	ExcludeUserIDs    []uint64
	ExcludeGroupIDs   []uint64
	ExcludeHashtagIDs []uint64
	ExcludeGeotagIDs  []uint64
	ExcludePostIDs    []uint64
	// Comment listings only.
	ExcludeCommentIDs []uint64

	// Nil means the scope is unset; the assembler never produces an empty
	// non-nil inclusion set (that short-circuits to a warning instead).
	IncludeUserIDs    []uint64
	IncludeGroupIDs   []uint64
	IncludeHashtagIDs []uint64
	IncludeGeotagIDs  []uint64

	// The users scope excludes anonymous authorship.
	ExcludeAnonymous bool

	AllDigest   bool
	DigestState int
	StickyState int

	CreatedAt DateWindow

	ViewCount    CounterRange
	LikeCount    CounterRange
	DislikeCount CounterRange
	FollowCount  CounterRange
	BlockCount   CounterRange
	CommentCount CounterRange

	ContentType ContentTypePlan

	// Upper visibility bound from subscription/group policy; nil unlimited.
	DateLimit *time.Time

	Order Order

	// Strict cursor bounds on the primary id; zero means unset.
	SinceID  uint64
	BeforeID uint64

	Nearby *NearbyPlan
	Fanout *FanoutPlan

	Page     int
	PageSize int
}
