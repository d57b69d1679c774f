package invalidation

import "time"

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Event is a durable record that a write happened which can change listing
// results. A background worker drains pending events and invalidates the
// named cache tags; the short cache TTL covers the gap until it runs.
type Event struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	CacheTag string `gorm:"type:varchar(64);not null"`
	Reason   string `gorm:"type:varchar(64);not null"`
	Status   string `gorm:"type:varchar(20);not null;index"`

	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
	DeletedAt   *time.Time `gorm:"index"`
}

func (Event) TableName() string {
	return "invalidation_events"
}
