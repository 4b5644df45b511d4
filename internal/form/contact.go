package form

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin/binding"

	"onlinemaid-backend/internal/model"
)

var (
	ErrNoRequest = errors.New("form requires a request")
	ErrBind      = errors.New("form could not be read")
)

// ContactForm is the public "contact us" form. A client states what kind
// of maid they are looking for and staff follow up.
type ContactForm struct {
	FirstName              string `form:"first_name" json:"first_name" validate:"required,max=100"`
	LastName               string `form:"last_name" json:"last_name" validate:"required,max=100"`
	ContactNumber          string `form:"contact_number" json:"contact_number" validate:"required,max=100"`
	Email                  string `form:"email" json:"email" validate:"required,email,max=255"`
	MaidNationality        string `form:"maid_nationality" json:"maid_nationality" validate:"required,choice=enquiry_nationality"`
	MaidMainResponsibility string `form:"maid_main_responsibility" json:"maid_main_responsibility" validate:"required,choice=enquiry_responsibility"`
	MaidType               string `form:"maid_type" json:"maid_type" validate:"required,choice=enquiry_maid_type"`
	MaidMinAge             int    `form:"maid_min_age" json:"maid_min_age" validate:"required,min=23,max=50,choice=maid_age"`
	MaidMaxAge             int    `form:"maid_max_age" json:"maid_max_age" validate:"required,min=23,max=50"`
	Remarks                string `form:"remarks" json:"remarks" validate:"required"`

	request *http.Request
}

// New reads a submission from r. Form-encoded and JSON bodies are both
// accepted, chosen by the Content-Type header.
func New(r *http.Request) (*ContactForm, error) {
	if r == nil {
		return nil, ErrNoRequest
	}
	f := &ContactForm{request: r}
	if err := bind(r, f); err != nil {
		return nil, err
	}
	return f, nil
}

func bind(r *http.Request, dst any) error {
	contentType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
	if err := binding.Default(r.Method, strings.TrimSpace(contentType)).Bind(r, dst); err != nil {
		return errors.Wrap(ErrBind, err.Error())
	}
	return nil
}

// Request is the request the form was read from.
func (f *ContactForm) Request() *http.Request {
	return f.request
}

// Validate checks every field and returns the failures keyed by JSON field
// name. An empty result means the form is valid.
func (f *ContactForm) Validate() FieldErrors {
	return validateStruct(f)
}

// ToEnquiry converts a valid form into the row that is stored.
func (f *ContactForm) ToEnquiry() *model.ContactEnquiry {
	return &model.ContactEnquiry{
		FirstName:              strings.TrimSpace(f.FirstName),
		LastName:               strings.TrimSpace(f.LastName),
		ContactNumber:          strings.TrimSpace(f.ContactNumber),
		Email:                  strings.TrimSpace(f.Email),
		MaidNationality:        f.MaidNationality,
		MaidMainResponsibility: f.MaidMainResponsibility,
		MaidType:               f.MaidType,
		MaidMinAge:             f.MaidMinAge,
		MaidMaxAge:             f.MaidMaxAge,
		Remarks:                f.Remarks,
	}
}
