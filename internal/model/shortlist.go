package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/schema"
)

// Shortlist is a visitor's set of maids to enquire about. It is addressed by
// an unguessable token instead of an account.
type Shortlist struct {
	ID        int64     `gorm:"primaryKey" json:"-"`
	Token     string    `gorm:"size:36;not null;uniqueIndex" json:"token"`
	CreatedOn time.Time `gorm:"column:created_on" json:"created_on"`

	Maids []Maid `gorm:"many2many:shortlist_maids;joinForeignKey:ShortlistID;joinReferences:MaidID" json:"maids"`
}

func (Shortlist) TableName() string { return "shortlists" }

func (s *Shortlist) BeforeCreate(tx *gorm.DB) error {
	if s.Token == "" {
		s.Token = uuid.NewString()
	}
	if s.CreatedOn.IsZero() {
		s.CreatedOn = clock()
	}
	return nil
}

// ShortlistedEnquiry is an enquiry about the maids of a shortlist.
type ShortlistedEnquiry struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	MobileNumber      string    `gorm:"size:100;not null" json:"mobile_number"`
	Email             string    `gorm:"size:255;not null" json:"email"`
	PropertyType      string    `gorm:"size:7;not null" json:"property_type"`
	NoOfFamilyMembers int       `gorm:"not null" json:"no_of_family_members"`
	NoOfBelow5        int       `gorm:"column:no_of_below_5;not null" json:"no_of_below_5"`
	Remarks           string    `gorm:"size:3000;not null" json:"remarks"`
	Active            bool      `json:"active"`
	Approved          bool      `json:"approved"`
	CreatedOn         time.Time `gorm:"column:created_on" json:"created_on"`

	Maids []Maid `gorm:"many2many:shortlisted_enquiry_maids;joinForeignKey:ShortlistedEnquiryID;joinReferences:MaidID" json:"maids,omitempty"`
}

func (ShortlistedEnquiry) TableName() string { return "shortlisted_enquiries" }

func (e *ShortlistedEnquiry) BeforeCreate(tx *gorm.DB) error {
	if err := checkChoice("property_type", e.PropertyType, schema.PropertyType); err != nil {
		return err
	}
	if err := checkNonNegative("no_of_family_members", e.NoOfFamilyMembers, "no_of_below_5", e.NoOfBelow5); err != nil {
		return err
	}
	if e.CreatedOn.IsZero() {
		e.CreatedOn = clock()
	}
	return nil
}
