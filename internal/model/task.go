package model

import "time"

// Task represents a chore. Deactivated tasks keep their history but never
// produce occurrences again.
type Task struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	AssigneeID *uint     `gorm:"index" json:"assigneeId"`
	Color      string    `json:"color"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}
