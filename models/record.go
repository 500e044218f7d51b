package models

import "time"

// AttendanceRecord is the canonical shape every spreadsheet row is resolved
// into before persistence. Date and Name are never empty on a stored record.
type AttendanceRecord struct {
	Id            int64     `gorm:"primaryKey" json:"id"`
	UploadId      string    `gorm:"type:varchar(36);index" json:"upload_id"`
	Date          string    `gorm:"type:varchar(10);index" json:"date"`
	Name          string    `gorm:"type:varchar(255);index" json:"name"`
	ClockIn       string    `gorm:"type:varchar(20)" json:"clock_in"`
	ClockOut      string    `gorm:"type:varchar(20)" json:"clock_out"`
	Category      string    `gorm:"type:varchar(255);index" json:"category"`
	Department    string    `gorm:"type:varchar(255);index" json:"department"`
	Workplace     string    `gorm:"type:varchar(255);index" json:"workplace"`
	TotalHours    float64   `json:"total_hours"`
	RegularHours  float64   `json:"regular_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
	BreakTime     float64   `json:"break_time"`
	AnnualLeave   string    `gorm:"type:varchar(255)" json:"annual_leave"`
	CreatedAt     time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
