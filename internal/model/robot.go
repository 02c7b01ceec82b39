package model

import (
	"time"

	"robodesk/internal/model/entity"
)

// RobotItem 会员看到的机器人，Unlocked 表示当前套餐可以下载
type RobotItem struct {
	Id          int64  `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Platform    string `json:"platform"`
	MinPlan     string `json:"min_plan"`
	SizeBytes   int64  `json:"size_bytes"`
	Unlocked    bool   `json:"unlocked"`
}

func NewRobotItem(r entity.Robot, unlocked bool) RobotItem {
	return RobotItem{
		Id:          r.Id,
		Name:        r.Name,
		Description: r.Description,
		Version:     r.Version,
		Platform:    r.Platform,
		MinPlan:     r.MinPlan,
		SizeBytes:   r.SizeBytes,
		Unlocked:    unlocked,
	}
}

type RobotCreateReq struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Version     string `json:"version" validate:"required,max=40"`
	Platform    string `json:"platform" validate:"required,max=60"`
	MinPlan     string `json:"min_plan" validate:"required,oneof=free basic pro premium"`
	FileName    string `json:"file_name" validate:"required,max=255"`
	IsActive    *bool  `json:"is_active"`
}

type RobotUpdateReq struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Version     *string `json:"version" validate:"omitempty,max=40"`
	Platform    *string `json:"platform" validate:"omitempty,max=60"`
	MinPlan     *string `json:"min_plan" validate:"omitempty,oneof=free basic pro premium"`
	FileName    *string `json:"file_name" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

type RobotLinkRes struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadFile 校验通过的下载票据对应的文件
type DownloadFile struct {
	Path string
	Name string
}
