package model

import "time"

// RecurrenceRule describes how a task repeats. Each active task owns
// exactly one rule. Dates are stored as YYYY-MM-DD text so range queries
// and end-date comparisons stay lexicographic, matching ISO ordering.
type RecurrenceRule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"uniqueIndex" json:"taskId"`
	Freq       string    `gorm:"not null" json:"freq"` // once|daily|weekly|monthly
	Interval   int       `gorm:"default:1" json:"interval"`
	ByWeekday  string    `json:"byWeekday"`  // comma separated: mon,tue,...
	ByMonthday string    `json:"byMonthday"` // comma separated day numbers
	StartDate  string    `gorm:"not null" json:"startDate"`
	EndDate    *string   `json:"endDate"`
	Timezone   string    `json:"timezone"` // carried for clients, unused in date math
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
