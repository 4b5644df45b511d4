package model

import (
	"regexp"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/schema"
)

// Agency is the tenant that owns maids, employees and invoices.
type Agency struct {
	ID                             int64   `gorm:"primaryKey" json:"id"`
	Name                           string  `gorm:"size:100;not null" json:"name"`
	LicenseNumber                  string  `gorm:"size:100;not null" json:"license_number"`
	WebsiteURI                     *string `gorm:"column:website_uri;size:100" json:"website_uri"`
	Profile                        string  `json:"profile"`
	Services                       string  `json:"services"`
	AmountOfBiodata                int     `json:"amount_of_biodata"`
	AmountOfBiodataAllowed         int     `json:"amount_of_biodata_allowed"`
	AmountOfFeaturedBiodata        int     `json:"amount_of_featured_biodata"`
	AmountOfFeaturedBiodataAllowed int     `json:"amount_of_featured_biodata_allowed"`
	AmountOfEmployees              int     `json:"amount_of_employees"`
	AmountOfEmployeesAllowed       int     `json:"amount_of_employees_allowed"`
	Active                         bool    `json:"active"`
}

func (Agency) TableName() string { return "agencies" }

func (a *Agency) BeforeSave(tx *gorm.DB) error {
	return checkNonNegative(
		"amount_of_biodata", a.AmountOfBiodata,
		"amount_of_biodata_allowed", a.AmountOfBiodataAllowed,
		"amount_of_featured_biodata", a.AmountOfFeaturedBiodata,
		"amount_of_featured_biodata_allowed", a.AmountOfFeaturedBiodataAllowed,
		"amount_of_employees", a.AmountOfEmployees,
		"amount_of_employees_allowed", a.AmountOfEmployeesAllowed,
	)
}

var contactNumberRe = regexp.MustCompile(`^[0-9]*$`)

// AgencyEmployee is a staff account of an agency. Employees without their
// own mailbox get a synthetic address on the configured internal domain.
type AgencyEmployee struct {
	ID                int64  `gorm:"primaryKey" json:"id"`
	AgencyID          int64  `gorm:"not null" json:"agency_id"`
	Name              string `gorm:"size:255;not null" json:"name"`
	ContactNumber     string `gorm:"size:50;not null" json:"contact_number"`
	EAPersonnelNumber string `gorm:"column:ea_personnel_number;size:50" json:"ea_personnel_number"`
	Email             string `gorm:"size:254;not null" json:"email"`
	Role              string `gorm:"size:2;not null" json:"role"`
	Deleted           bool   `json:"deleted"`
	Published         bool   `json:"published"`
}

func (AgencyEmployee) TableName() string { return "agency_employees" }

// NewAgencyEmployee returns an employee with the column defaults applied.
func NewAgencyEmployee(agencyID int64) AgencyEmployee {
	return AgencyEmployee{AgencyID: agencyID, EAPersonnelNumber: "NA", Role: "S"}
}

func (e *AgencyEmployee) BeforeSave(tx *gorm.DB) error {
	if !contactNumberRe.MatchString(e.ContactNumber) {
		return errors.Wrapf(ErrInvalidContact, "contact_number %q", e.ContactNumber)
	}
	return checkChoice("role", e.Role, schema.EmployeeRole)
}
