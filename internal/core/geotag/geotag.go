package geotag

import "time"

type Geotag struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Fsid string `gorm:"uniqueIndex;type:char(36);not null"`
	Name string `gorm:"not null"`

	MapLatitude  float64 `gorm:"not null"`
	MapLongitude float64 `gorm:"not null"`

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
