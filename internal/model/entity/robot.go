package entity

import (
	"robodesk/utils"

	"gorm.io/plugin/soft_delete"
)

// Robot 可下载的交易机器人文件
type Robot struct {
	Id          int64                 `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Name        string                `gorm:"column:name" json:"name"`
	Description string                `gorm:"column:description" json:"description"`
	Version     string                `gorm:"column:version" json:"version"`
	Platform    string                `gorm:"column:platform" json:"platform"` // 例如 MetaTrader 5、Profit
	MinPlan     string                `gorm:"column:min_plan" json:"min_plan"`
	FileName    string                `gorm:"column:file_name" json:"file_name"` // 相对于下载目录
	SizeBytes   int64                 `gorm:"column:size_bytes" json:"size_bytes"`
	IsActive    bool                  `gorm:"column:is_active" json:"is_active"`
	CreatedAt   utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	IsDel       soft_delete.DeletedAt `gorm:"column:is_del" json:"-"`
}

func (Robot) TableName() string {
	return "robots"
}

type DownloadLog struct {
	Id        int64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserId    string         `gorm:"column:user_id" json:"user_id"`
	RobotId   int64          `gorm:"column:robot_id" json:"robot_id,string"`
	Ip        string         `gorm:"column:ip" json:"ip"`
	CreatedAt utils.JsonTime `gorm:"column:created_at" json:"created_at"`
}

func (DownloadLog) TableName() string {
	return "download_logs"
}
