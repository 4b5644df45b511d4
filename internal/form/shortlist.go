package form

import (
	"net/http"
	"strings"

	"github.com/samber/lo"

	"onlinemaid-backend/internal/model"
	"onlinemaid-backend/internal/schema"
)

// ConsentText is shown next to the consent checkbox of the shortlist form.
const ConsentText = "By submitting this enquiry form, I consent to the collection, use and disclosure " +
	"of my personal data by Online Maid Pte Ltd to agencies that are listed on this platform."

// ShortlistForm is the enquiry sent about the maids of a shortlist.
// Household sizes are pointers so that an explicit 0 passes "required".
type ShortlistForm struct {
	Name              string `form:"name" json:"name" validate:"required,max=100"`
	MobileNumber      string `form:"mobile_number" json:"mobile_number" validate:"required,max=100"`
	Email             string `form:"email" json:"email" validate:"required,email,max=255"`
	PropertyType      string `form:"property_type" json:"property_type" validate:"required,choice=enquiry_property_type"`
	NoOfFamilyMembers *int   `form:"no_of_family_members" json:"no_of_family_members" validate:"required,min=0"`
	NoOfBelow5        *int   `form:"no_of_below_5" json:"no_of_below_5" validate:"required,min=0"`
	Remarks           string `form:"remarks" json:"remarks" validate:"required,max=3000,nolinks"`
	Consent           bool   `form:"consent" json:"consent" validate:"required"`

	request *http.Request
}

// NewShortlistForm reads a submission from r the same way New does.
func NewShortlistForm(r *http.Request) (*ShortlistForm, error) {
	if r == nil {
		return nil, ErrNoRequest
	}
	f := &ShortlistForm{request: r}
	if err := bind(r, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *ShortlistForm) Request() *http.Request {
	return f.request
}

func (f *ShortlistForm) Validate() FieldErrors {
	return validateStruct(f)
}

// ToEnquiry converts a valid form. The maids are attached when the
// shortlist is submitted.
func (f *ShortlistForm) ToEnquiry() *model.ShortlistedEnquiry {
	return &model.ShortlistedEnquiry{
		Name:              strings.TrimSpace(f.Name),
		MobileNumber:      strings.TrimSpace(f.MobileNumber),
		Email:             strings.TrimSpace(f.Email),
		PropertyType:      f.PropertyType,
		NoOfFamilyMembers: lo.FromPtr(f.NoOfFamilyMembers),
		NoOfBelow5:        lo.FromPtr(f.NoOfBelow5),
		Remarks:           f.Remarks,
	}
}

// ShortlistLayout is the presentation grid of the shortlist form.
func ShortlistLayout() []Row {
	return []Row{
		{Columns: []Column{
			{Field: "name", Label: "Name", Width: 6},
			{Field: "mobile_number", Label: "Mobile Number", Width: 6},
		}},
		{Columns: []Column{
			{Field: "email", Label: "Email", Width: 6},
			{Field: "property_type", Label: "Type of Property", Width: 6, Choices: schema.PropertyType.Choices},
		}},
		{Columns: []Column{
			{Field: "no_of_family_members", Label: "Number of Family Members", Width: 6},
			{Field: "no_of_below_5", Label: "Number of Children below 5", Width: 6},
		}},
		{Columns: []Column{
			{Field: "remarks", Label: "Remarks", Width: 12},
		}},
		{Columns: []Column{
			{Field: "consent", Label: ConsentText, Width: 12},
		}},
		{Columns: []Column{
			{Field: SubmitField, Label: "Submit", Width: 12},
		}},
	}
}
