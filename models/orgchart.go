package models

import "time"

type OrgChartNode struct {
	Id             int64     `gorm:"primaryKey" json:"id"`
	ParentId       *int64    `gorm:"index" json:"parent_id"`
	NodeType       string    `gorm:"type:varchar(50);default:person" json:"node_type"`
	Name           string    `gorm:"type:varchar(255)" json:"name"`
	Position       string    `gorm:"type:varchar(255)" json:"position"`
	Department     string    `gorm:"type:varchar(255)" json:"department"`
	EmploymentType string    `gorm:"type:varchar(100)" json:"employment_type"`
	Phone          string    `gorm:"type:varchar(50)" json:"phone"`
	Memo           string    `gorm:"type:varchar(500)" json:"memo"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (OrgChartNode) TableName() string {
	return "org_chart_nodes"
}
