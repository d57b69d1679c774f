package user

import "time"

type User struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Fsid     string `gorm:"uniqueIndex;type:char(36);not null"`
	Name     string `gorm:"not null"`
	Family   string `gorm:"not null"`
	Username string `gorm:"unique;not null"`
	Mobile   string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	// Disabled authors make all of their content invisible.
	IsEnabled bool `gorm:"not null;default:true"`

	// Subscription expiry. Drives the content date limit for listings.
	ExpiredAt *time.Time

	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
