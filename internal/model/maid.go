package model

import (
	"time"

	"gorm.io/gorm"

	"onlinemaid-backend/internal/schema"
)

// Maid is one domestic worker profile owned by an agency.
type Maid struct {
	ID                       int64     `gorm:"primaryKey" json:"id"`
	AgencyID                 int64     `gorm:"not null;index" json:"agency_id"`
	ReferenceNumber          string    `gorm:"size:255;not null" json:"reference_number"`
	MaidType                 string    `gorm:"size:3;not null" json:"maid_type"`
	Salary                   int       `json:"salary"`
	LoanAmount               int       `json:"loan_amount"`
	DaysOff                  int       `json:"days_off"`
	PassportStatus           bool      `json:"passport_status"`
	RepatriationAirport      string    `gorm:"size:100" json:"repatriation_airport"`
	Remarks                  string    `gorm:"size:255" json:"remarks"`
	CreatedOn                time.Time `gorm:"column:created_on" json:"created_on"`
	UpdatedOn                time.Time `gorm:"column:updated_on" json:"updated_on"`
	Complete                 bool      `json:"complete"`
	BiodataComplete          bool      `json:"biodata_complete"`
	FamilyDetailsComplete    bool      `json:"family_details_complete"`
	InfantChildCareComplete  bool      `json:"infant_child_care_complete"`
	ElderlyCareComplete      bool      `json:"elderly_care_complete"`
	DisabledCareComplete     bool      `json:"disabled_care_complete"`
	GeneralHouseworkComplete bool      `json:"general_housework_complete"`
	CookingComplete          bool      `json:"cooking_complete"`
	Published                bool      `json:"published"`
	Featured                 bool      `json:"featured"`

	// Associations
	Biodata                 *MaidBiodata                 `gorm:"foreignKey:MaidID" json:"biodata,omitempty"`
	FamilyDetails           *MaidFamilyDetails           `gorm:"foreignKey:MaidID" json:"family_details,omitempty"`
	InfantChildCare         *MaidInfantChildCare         `gorm:"foreignKey:MaidID" json:"infant_child_care,omitempty"`
	ElderlyCare             *MaidElderlyCare             `gorm:"foreignKey:MaidID" json:"elderly_care,omitempty"`
	DisabledCare            *MaidDisabledCare            `gorm:"foreignKey:MaidID" json:"disabled_care,omitempty"`
	GeneralHousework        *MaidGeneralHousework        `gorm:"foreignKey:MaidID" json:"general_housework,omitempty"`
	Cooking                 *MaidCooking                 `gorm:"foreignKey:MaidID" json:"cooking,omitempty"`
	Status                  *MaidStatus                  `gorm:"foreignKey:MaidID" json:"status,omitempty"`
	EmploymentHistory       []MaidEmploymentHistory      `gorm:"foreignKey:MaidID" json:"employment_history,omitempty"`
	FoodHandlingPreferences []MaidFoodHandlingPreference `gorm:"foreignKey:MaidID" json:"food_handling_preferences,omitempty"`
	DietaryRestrictions     []MaidDietaryRestriction     `gorm:"foreignKey:MaidID" json:"dietary_restrictions,omitempty"`
}

func (Maid) TableName() string { return "maids" }

// NewMaid returns a maid with the column defaults applied.
func NewMaid(agencyID int64) Maid {
	return Maid{AgencyID: agencyID, MaidType: "NEW"}
}

// clock is swapped in tests.
var clock = func() time.Time { return time.Now().UTC() }

// BeforeSave validates the row and refreshes updated_on. updated_on never
// moves backwards, even if the wall clock does.
func (m *Maid) BeforeSave(tx *gorm.DB) error {
	if err := checkChoice("maid_type", m.MaidType, schema.MaidType); err != nil {
		return err
	}
	if err := checkNonNegative("salary", m.Salary, "loan_amount", m.LoanAmount, "days_off", m.DaysOff); err != nil {
		return err
	}
	now := clock()
	if m.CreatedOn.IsZero() {
		m.CreatedOn = now
	}
	if now.After(m.UpdatedOn) {
		m.UpdatedOn = now
	}
	m.Complete = m.BiodataComplete && m.FamilyDetailsComplete && m.InfantChildCareComplete &&
		m.ElderlyCareComplete && m.DisabledCareComplete && m.GeneralHouseworkComplete && m.CookingComplete
	return nil
}

// TypeLabel is the display label of MaidType.
func (m *Maid) TypeLabel() string {
	return schema.MaidType.Label(m.MaidType)
}
