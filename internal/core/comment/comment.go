package comment

import (
	"time"

	"rasana/internal/core/user"
)

type Comment struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Fsid   string `gorm:"uniqueIndex;type:char(36);not null"`
	PostID uint64 `gorm:"index;not null"`
	UserID uint64 `gorm:"index;not null"`
	User   user.User `gorm:"foreignKey:UserID"`
	// Nested replies point at their parent comment; zero for top level.
	ParentID uint64 `gorm:"index;not null;default:0"`

	Content string `gorm:"type:text;not null"`

	IsEnabled   bool `gorm:"not null;default:true"`
	IsAnonymous bool `gorm:"not null;default:false"`

	LikeCount    int64 `gorm:"not null;default:0"`
	DislikeCount int64 `gorm:"not null;default:0"`
	CommentCount int64 `gorm:"not null;default:0"`

	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
