package model

import "time"

// Instance is a per-date override of a rule-implied occurrence. Created
// lazily on the first status change or note, never by mere resolution.
type Instance struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TaskID      uint       `gorm:"uniqueIndex:idx_task_date" json:"taskId"`
	Date        string     `gorm:"uniqueIndex:idx_task_date" json:"date"`
	Status      string     `gorm:"default:open" json:"status"` // open|done
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// Instance statuses.
const (
	StatusOpen = "open"
	StatusDone = "done"
)
