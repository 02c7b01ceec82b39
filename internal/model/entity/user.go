package entity

import (
	"robodesk/utils"
)

// User 会员资料，id 与后端服务鉴权用户的uuid一致
type User struct {
	Id          string          `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:name" json:"name"`
	Email       string          `gorm:"column:email" json:"email"`
	Phone       string          `gorm:"column:phone" json:"phone"`
	Plan        string          `gorm:"column:plan;default:free" json:"plan"`
	IsActive    bool            `gorm:"column:is_active" json:"is_active"`
	IsAdmin     bool            `gorm:"column:is_admin;default:false" json:"is_admin"`
	CreatedAt   utils.JsonTime  `gorm:"column:created_at" json:"created_at"`
	LastLoginAt *utils.JsonTime `gorm:"column:last_login_at" json:"last_login_at"`
}

func (User) TableName() string {
	return "profiles"
}
