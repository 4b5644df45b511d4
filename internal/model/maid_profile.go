package model

import (
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/schema"
)

// MaidBiodata is the personal particulars of a maid. Every attribute is
// optional until the agency fills the section in.
type MaidBiodata struct {
	ID              int64   `gorm:"primaryKey" json:"id"`
	MaidID          int64   `gorm:"uniqueIndex;not null" json:"maid_id"`
	Name            *string `gorm:"size:255" json:"name"`
	Age             *int    `json:"age"`
	CountryOfOrigin *string `gorm:"size:3" json:"country_of_origin"`
	Height          *int    `json:"height"`
	Weight          *int    `json:"weight"`
	PlaceOfBirth    *string `gorm:"size:25" json:"place_of_birth"`
	Address1        *string `gorm:"column:address_1;size:100" json:"address_1"`
	Address2        *string `gorm:"column:address_2;size:100" json:"address_2"`
	Religion        string  `gorm:"size:4;not null" json:"religion"`
}

func (MaidBiodata) TableName() string { return "maid_biodata" }

func (b *MaidBiodata) BeforeSave(tx *gorm.DB) error {
	if b.Religion == "" {
		b.Religion = "NONE"
	}
	if err := checkChoice("religion", b.Religion, schema.Religion); err != nil {
		return err
	}
	if err := checkOptionalChoice("country_of_origin", b.CountryOfOrigin, schema.CountryOfOrigin); err != nil {
		return err
	}
	return checkNonNegative("height", b.Height, "weight", b.Weight)
}

// MaidFamilyDetails holds marital status and dependants.
type MaidFamilyDetails struct {
	ID               int64  `gorm:"primaryKey" json:"id"`
	MaidID           int64  `gorm:"uniqueIndex;not null" json:"maid_id"`
	MaritalStatus    string `gorm:"size:2;not null" json:"marital_status"`
	NumberOfChildren int    `json:"number_of_children"`
	AgeOfChildren    string `gorm:"size:50;not null" json:"age_of_children"`
	NumberOfSiblings int    `json:"number_of_siblings"`
}

func (MaidFamilyDetails) TableName() string { return "maid_family_details" }

func (f *MaidFamilyDetails) BeforeSave(tx *gorm.DB) error {
	if f.MaritalStatus == "" {
		f.MaritalStatus = "S"
	}
	if f.AgeOfChildren == "" {
		f.AgeOfChildren = "N.A"
	}
	if err := checkChoice("marital_status", f.MaritalStatus, schema.MaritalStatus); err != nil {
		return err
	}
	return checkNonNegative("number_of_children", f.NumberOfChildren, "number_of_siblings", f.NumberOfSiblings)
}

// CareProfile is the assessment shared by every care and housework section.
type CareProfile struct {
	Preference   int     `gorm:"not null" json:"preference"`
	Willingness  bool    `json:"willingness"`
	Experience   bool    `json:"experience"`
	Remarks      *string `gorm:"size:8" json:"remarks"`
	OtherRemarks string  `json:"other_remarks"`
}

// DefaultCareProfile is a neutral assessment: no preference either way,
// willing and experienced.
func DefaultCareProfile() CareProfile {
	return CareProfile{Preference: 3, Willingness: true, Experience: true}
}

func (c *CareProfile) validate(remarks schema.ChoiceSet) error {
	if !schema.CarePreference.ContainsInt(c.Preference) {
		return errors.Wrapf(ErrInvalidChoice, "preference=%d", c.Preference)
	}
	return checkOptionalChoice("remarks", c.Remarks, remarks)
}

type MaidInfantChildCare struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	MaidID int64 `gorm:"uniqueIndex;not null" json:"maid_id"`
	CareProfile
}

func (MaidInfantChildCare) TableName() string { return "maid_infant_child_cares" }

func (c *MaidInfantChildCare) BeforeSave(tx *gorm.DB) error {
	return c.validate(schema.InfantChildCareRemarks)
}

type MaidElderlyCare struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	MaidID int64 `gorm:"uniqueIndex;not null" json:"maid_id"`
	CareProfile
}

func (MaidElderlyCare) TableName() string { return "maid_elderly_cares" }

func (c *MaidElderlyCare) BeforeSave(tx *gorm.DB) error {
	return c.validate(schema.ElderlyCareRemarks)
}

type MaidDisabledCare struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	MaidID int64 `gorm:"uniqueIndex;not null" json:"maid_id"`
	CareProfile
}

func (MaidDisabledCare) TableName() string { return "maid_disabled_cares" }

func (c *MaidDisabledCare) BeforeSave(tx *gorm.DB) error {
	return c.validate(schema.DisabledCareRemarks)
}

type MaidGeneralHousework struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	MaidID int64 `gorm:"uniqueIndex;not null" json:"maid_id"`
	CareProfile
}

func (MaidGeneralHousework) TableName() string { return "maid_general_houseworks" }

func (c *MaidGeneralHousework) BeforeSave(tx *gorm.DB) error {
	return c.validate(schema.GeneralHouseworkRemarks)
}

type MaidCooking struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	MaidID int64 `gorm:"uniqueIndex;not null" json:"maid_id"`
	CareProfile
}

func (MaidCooking) TableName() string { return "maid_cookings" }

func (c *MaidCooking) BeforeSave(tx *gorm.DB) error {
	return c.validate(schema.CookingRemarks)
}

// MaidStatus tracks the work-permit milestones of a maid.
type MaidStatus struct {
	ID                           int64      `gorm:"primaryKey" json:"id"`
	MaidID                       int64      `gorm:"uniqueIndex;not null" json:"maid_id"`
	IPAApproved                  bool       `gorm:"column:ipa_approved" json:"ipa_approved"`
	BondDate                     *time.Time `json:"bond_date"`
	SIPDate                      *time.Time `gorm:"column:sip_date" json:"sip_date"`
	ThumbprintDate               *time.Time `json:"thumbprint_date"`
	DeploymentDate               *time.Time `json:"deployment_date"`
	DateOfApplicationForTransfer *time.Time `json:"date_of_application_for_transfer"`
	FDWWorkCommencementDate      *time.Time `gorm:"column:fdw_work_commencement_date" json:"fdw_work_commencement_date"`
}

func (MaidStatus) TableName() string { return "maid_statuses" }

// MaidWorkDuty is one entry of the seeded work duty lookup table.
type MaidWorkDuty struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:5;not null" json:"name"`
}

func (MaidWorkDuty) TableName() string { return "maid_work_duties" }

func (d *MaidWorkDuty) BeforeSave(tx *gorm.DB) error {
	return checkChoice("name", d.Name, schema.WorkDuty)
}

// Label is the display label of the duty.
func (d MaidWorkDuty) Label() string {
	return schema.WorkDuty.Label(d.Name)
}

// MaidEmploymentHistory is one past placement of a maid.
type MaidEmploymentHistory struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	MaidID       int64          `gorm:"not null;index" json:"maid_id"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	Country      string         `gorm:"size:3;not null" json:"country"`
	WorkDuration time.Duration  `json:"work_duration"`
	WorkDuties   []MaidWorkDuty `gorm:"many2many:maid_employment_history_work_duties;joinForeignKey:MaidEmploymentHistoryID;joinReferences:MaidWorkDutyID" json:"work_duties,omitempty"`
}

func (MaidEmploymentHistory) TableName() string { return "maid_employment_histories" }

// BeforeSave derives WorkDuration from the date range.
func (h *MaidEmploymentHistory) BeforeSave(tx *gorm.DB) error {
	if err := checkChoice("country", h.Country, schema.EmploymentCountry); err != nil {
		return err
	}
	if h.EndDate.Before(h.StartDate) {
		return errors.Wrapf(ErrInvalidRange, "start=%s end=%s", h.StartDate.Format(time.DateOnly), h.EndDate.Format(time.DateOnly))
	}
	h.WorkDuration = h.EndDate.Sub(h.StartDate)
	return nil
}

type MaidFoodHandlingPreference struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	MaidID     int64  `gorm:"not null;index" json:"maid_id"`
	Preference string `gorm:"size:1;not null" json:"preference"`
}

func (MaidFoodHandlingPreference) TableName() string { return "maid_food_handling_preferences" }

func (p *MaidFoodHandlingPreference) BeforeSave(tx *gorm.DB) error {
	if p.Preference == "" {
		p.Preference = "P"
	}
	return checkChoice("preference", p.Preference, schema.FoodRestriction)
}

type MaidDietaryRestriction struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	MaidID      int64  `gorm:"not null;index" json:"maid_id"`
	Restriction string `gorm:"size:1;not null" json:"restriction"`
}

func (MaidDietaryRestriction) TableName() string { return "maid_dietary_restrictions" }

func (r *MaidDietaryRestriction) BeforeSave(tx *gorm.DB) error {
	if r.Restriction == "" {
		r.Restriction = "P"
	}
	return checkChoice("restriction", r.Restriction, schema.FoodRestriction)
}
