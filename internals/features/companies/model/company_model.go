package model

import (
	"time"

	"github.com/google/uuid"
)

type CompanyModel struct {
	CompanyID      uuid.UUID `gorm:"column:company_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"company_id"`
	CompanyName    string    `gorm:"column:company_name;type:varchar(150);not null" json:"company_name"`
	CompanyContact string    `gorm:"column:company_contact;type:varchar(100)" json:"company_contact,omitempty"`
	CompanyPhone   string    `gorm:"column:company_phone;type:varchar(20)" json:"company_phone,omitempty"`
	CompanyAddress string    `gorm:"column:company_address;type:varchar(255)" json:"company_address,omitempty"`
	CompanyActive  bool      `gorm:"column:company_active;not null;default:true" json:"company_active"`

	CompanyCreatedAt time.Time `gorm:"column:company_created_at;autoCreateTime" json:"company_created_at"`
	CompanyUpdatedAt time.Time `gorm:"column:company_updated_at;autoUpdateTime" json:"company_updated_at"`
}

func (CompanyModel) TableName() string {
	return "companies"
}
