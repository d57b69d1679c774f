package hashtag

import "time"

type Hashtag struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Fsid string `gorm:"uniqueIndex;type:varchar(128);not null"`
	Name string `gorm:"not null"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
