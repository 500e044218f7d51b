package models

import "time"

type WorkforcePlan struct {
	Id           int64     `gorm:"primaryKey" json:"id"`
	Year         int       `gorm:"uniqueIndex:idx_plan_slot" json:"year"`
	Month        int       `gorm:"uniqueIndex:idx_plan_slot" json:"month"`
	Day          int       `gorm:"uniqueIndex:idx_plan_slot" json:"day"`
	WorkerType   string    `gorm:"type:varchar(100);uniqueIndex:idx_plan_slot" json:"worker_type"`
	PlannedHours float64   `json:"planned_hours"`
	PlannedCount int       `json:"planned_count"`
	Memo         string    `gorm:"type:varchar(500)" json:"memo"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (WorkforcePlan) TableName() string {
	return "workforce_plans"
}
