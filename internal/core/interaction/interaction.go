package interaction

import "time"

// Kind enumerates the entity dimensions a viewer can follow or block.
type Kind int8

const (
	KindUser Kind = iota + 1
	KindGroup
	KindHashtag
	KindGeotag
	KindPost
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindGroup:
		return "group"
	case KindHashtag:
		return "hashtag"
	case KindGeotag:
		return "geotag"
	case KindPost:
		return "post"
	case KindComment:
		return "comment"
	}
	return "unknown"
}

// ParseKind maps the wire name to a Kind; ok is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "user":
		return KindUser, true
	case "group":
		return KindGroup, true
	case "hashtag":
		return KindHashtag, true
	case "geotag":
		return KindGeotag, true
	case "post":
		return KindPost, true
	case "comment":
		return KindComment, true
	}
	return 0, false
}

// BlockRelation excludes the target entity from every listing the viewer sees.
type BlockRelation struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uniq_block"`
	BlockKind Kind   `gorm:"not null;uniqueIndex:uniq_block"`
	BlockedID uint64 `gorm:"not null;uniqueIndex:uniq_block"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// FollowRelation feeds the timeline fan-out. Following a group also counts
// as membership for private group visibility.
type FollowRelation struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	UserID     uint64 `gorm:"not null;uniqueIndex:uniq_follow"`
	FollowKind Kind   `gorm:"not null;uniqueIndex:uniq_follow"`
	FollowedID uint64 `gorm:"not null;uniqueIndex:uniq_follow"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
