package entity

import (
	"robodesk/utils"

	"gorm.io/plugin/soft_delete"
)

// Contract 客户合同，月费计入MRR
type Contract struct {
	Id           int64                 `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	ClientName   string                `gorm:"column:client_name" json:"client_name"`
	ClientEmail  string                `gorm:"column:client_email" json:"client_email"`
	UserId       *string               `gorm:"column:user_id" json:"user_id"`
	Plan         string                `gorm:"column:plan" json:"plan"`
	MonthlyValue float64               `gorm:"column:monthly_value" json:"monthly_value"`
	Status       string                `gorm:"column:status" json:"status"` // active | pending | cancelled | expired
	StartDate    *utils.JsonTime       `gorm:"column:start_date" json:"start_date"`
	EndDate      *utils.JsonTime       `gorm:"column:end_date" json:"end_date"`
	PaymentRef   string                `gorm:"column:payment_ref" json:"payment_ref"`
	Notes        string                `gorm:"column:notes" json:"notes"`
	CreatedAt    utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	IsDel        soft_delete.DeletedAt `gorm:"column:is_del" json:"-"`
}

func (Contract) TableName() string {
	return "contracts"
}

func (c Contract) IsActive() bool {
	return c.Status == "active"
}
