package entity

import (
	"robodesk/utils"
)

// SolutionRequest 访客提交的定制开发需求
type SolutionRequest struct {
	Id          int64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Name        string         `gorm:"column:name" json:"name"`
	Email       string         `gorm:"column:email" json:"email"`
	Phone       string         `gorm:"column:phone" json:"phone"`
	Company     string         `gorm:"column:company" json:"company"`
	Category    string         `gorm:"column:category" json:"category"`
	Description string         `gorm:"column:description" json:"description"`
	Budget      float64        `gorm:"column:budget" json:"budget"`
	Status      string         `gorm:"column:status;default:new" json:"status"`
	Priority    string         `gorm:"column:priority;default:medium" json:"priority"`
	AdminNotes  string         `gorm:"column:admin_notes" json:"admin_notes"`
	CreatedAt   utils.JsonTime `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   utils.JsonTime `gorm:"column:updated_at" json:"updated_at"`
}

func (SolutionRequest) TableName() string {
	return "solution_requests"
}

// IsClosed 已拒绝或已完成
func (s SolutionRequest) IsClosed() bool {
	return s.Status == "rejected" || s.Status == "done"
}
