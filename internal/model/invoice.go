package model

import (
	"time"

	"gorm.io/gorm"
)

// Invoice is a billing record. AgencyID is cleared when the agency is
// deleted so the invoice itself survives.
type Invoice struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CreatedOn time.Time `gorm:"column:created_on" json:"created_on"`
	AgencyID  *int64    `json:"agency_id"`
}

func (Invoice) TableName() string { return "invoices" }

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.CreatedOn.IsZero() {
		i.CreatedOn = clock()
	}
	return nil
}
