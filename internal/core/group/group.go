package group

import "time"

type Group struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Fsid     string `gorm:"uniqueIndex;type:char(36);not null"`
	Name     string `gorm:"not null"`
	ParentID uint64 `gorm:"index;not null;default:0"`

	// Private group content is visible to members (group followers) only.
	IsPrivate bool `gorm:"not null;default:false"`

	// Per-group retention override. Content created after this instant is
	// hidden inside the group; nil means the group imposes no limit.
	ContentDateLimit *time.Time

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
