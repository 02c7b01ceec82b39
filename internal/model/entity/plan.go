package entity

import (
	"gorm.io/datatypes"
)

// Plan 套餐，tier 越大权限越高
type Plan struct {
	Id           int64          `gorm:"column:id;primaryKey" json:"id,string"`
	Code         string         `gorm:"column:code;unique" json:"code"`
	Name         string         `gorm:"column:name" json:"name"`
	MonthlyPrice float64        `gorm:"column:monthly_price" json:"monthly_price"`
	Tier         int            `gorm:"column:tier" json:"tier"`
	Features     datatypes.JSON `gorm:"column:features;type:json" json:"features"`
	Highlight    bool           `gorm:"column:highlight" json:"highlight"`
	IsActive     bool           `gorm:"column:is_active" json:"is_active"`
	Sort         int            `gorm:"column:sort" json:"sort"`
}

func (Plan) TableName() string {
	return "plans"
}
