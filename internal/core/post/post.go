package post

import (
	"time"

	"rasana/internal/core/user"
)

// Digest and sticky states. Promotion flags, independent of visibility.
const (
	DigestNo      = 1
	DigestGeneral = 2
	DigestPremium = 3

	StickyNo     = 1
	StickyGroup  = 2
	StickyGlobal = 3
)

type Post struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	Fsid    string `gorm:"uniqueIndex;type:char(36);not null"`
	UserID  uint64 `gorm:"index;not null"`
	User    user.User `gorm:"foreignKey:UserID"`
	GroupID uint64 `gorm:"index;not null;default:0"`
	// Geotag association; zero means the post carries no location.
	GeotagID uint64 `gorm:"index;not null;default:0"`

	Title   string `gorm:"type:varchar(255)"`
	Content string `gorm:"type:text;not null"`

	IsEnabled   bool `gorm:"not null;default:true"`
	IsAnonymous bool `gorm:"not null;default:false"`

	DigestState int `gorm:"not null;default:1"`
	StickyState int `gorm:"not null;default:1"`

	ViewCount    int64 `gorm:"not null;default:0"`
	LikeCount    int64 `gorm:"not null;default:0"`
	DislikeCount int64 `gorm:"not null;default:0"`
	FollowCount  int64 `gorm:"not null;default:0"`
	BlockCount   int64 `gorm:"not null;default:0"`
	CommentCount int64 `gorm:"not null;default:0"`

	LastCommentAt *time.Time

	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// HashtagUsage links a post to a hashtag. A post may carry several.
type HashtagUsage struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	PostID    uint64 `gorm:"index;not null;uniqueIndex:uniq_post_hashtag"`
	HashtagID uint64 `gorm:"not null;uniqueIndex:uniq_post_hashtag"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// FileUsage records an attached file and its type class.
// Types follow the upstream numbering.
const (
	FileTypeImage    = 1
	FileTypeVideo    = 2
	FileTypeAudio    = 3
	FileTypeDocument = 4
)

type FileUsage struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	PostID   uint64 `gorm:"index;not null"`
	FileType int    `gorm:"not null"`
	FileID   uint64 `gorm:"not null"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}

// ExtendUsage records plugin-supplied content attached to a post,
// keyed by the owning plugin's fskey.
type ExtendUsage struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	PostID   uint64 `gorm:"index;not null"`
	AppFskey string `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
