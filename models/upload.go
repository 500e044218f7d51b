package models

import (
	"time"

	"gorm.io/datatypes"
)

// Upload is one ingestion run of a single spreadsheet file. It owns its
// attendance records: deleting an upload removes every record it produced.
type Upload struct {
	Id               string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	Filename         string             `gorm:"type:varchar(255)" json:"filename"`
	OriginalFilename string             `gorm:"type:varchar(255)" json:"original_filename"`
	RecordCount      int                `json:"record_count"`
	Analysis         datatypes.JSON     `json:"analysis"`
	UploadedAt       time.Time          `gorm:"autoCreateTime" json:"uploaded_at"`
	Records          []AttendanceRecord `gorm:"foreignKey:UploadId;constraint:OnDelete:CASCADE" json:"-"`
}

func (Upload) TableName() string {
	return "uploads"
}
