package entity

import (
	"robodesk/utils"

	"gorm.io/plugin/soft_delete"
)

type Cost struct {
	Id          int64                 `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Description string                `gorm:"column:description" json:"description"`
	Category    string                `gorm:"column:category" json:"category"`
	Amount      float64               `gorm:"column:amount" json:"amount"`
	Date        *utils.JsonTime       `gorm:"column:date" json:"date"`
	Recurring   bool                  `gorm:"column:recurring" json:"recurring"` // 每月重复
	CreatedAt   utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	IsDel       soft_delete.DeletedAt `gorm:"column:is_del" json:"-"`
}

func (Cost) TableName() string {
	return "costs"
}
