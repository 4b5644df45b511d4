package model

import (
	"time"

	"gorm.io/gorm"
)

// ContactEnquiry is a submitted "contact us" form.
type ContactEnquiry struct {
	ID                     int64     `gorm:"primaryKey" json:"id"`
	FirstName              string    `gorm:"size:100;not null" json:"first_name"`
	LastName               string    `gorm:"size:100;not null" json:"last_name"`
	ContactNumber          string    `gorm:"size:100;not null" json:"contact_number"`
	Email                  string    `gorm:"size:255;not null" json:"email"`
	MaidNationality        string    `gorm:"size:3;not null" json:"maid_nationality"`
	MaidMainResponsibility string    `gorm:"size:3;not null" json:"maid_main_responsibility"`
	MaidType               string    `gorm:"size:3;not null" json:"maid_type"`
	MaidMinAge             int       `gorm:"not null" json:"maid_min_age"`
	MaidMaxAge             int       `gorm:"not null" json:"maid_max_age"`
	Remarks                string    `gorm:"not null" json:"remarks"`
	CreatedOn              time.Time `gorm:"column:created_on" json:"created_on"`
}

func (ContactEnquiry) TableName() string { return "contact_enquiries" }

func (e *ContactEnquiry) BeforeCreate(tx *gorm.DB) error {
	if e.CreatedOn.IsZero() {
		e.CreatedOn = clock()
	}
	return nil
}
