package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ContactForm {
	return ContactForm{
		FirstName:              "Jane",
		LastName:               "Tan",
		ContactNumber:          "91234567",
		Email:                  "jane@example.org",
		MaidNationality:        "PHL",
		MaidMainResponsibility: "CFE",
		MaidType:               "ALL",
		MaidMinAge:             25,
		MaidMaxAge:             40,
		Remarks:                "Looking for someone to care for my mother.",
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(f *ContactForm)
		invalid []string
	}{
		{name: "valid", mutate: func(f *ContactForm) {}},
		{name: "min age 30 passes", mutate: func(f *ContactForm) { f.MaidMinAge = 30 }},
		{name: "min age 22 fails", mutate: func(f *ContactForm) { f.MaidMinAge = 22 }, invalid: []string{"maid_min_age"}},
		{name: "max age 51 fails", mutate: func(f *ContactForm) { f.MaidMaxAge = 51 }, invalid: []string{"maid_max_age"}},
		{name: "missing email", mutate: func(f *ContactForm) { f.Email = "" }, invalid: []string{"email"}},
		{name: "bad email", mutate: func(f *ContactForm) { f.Email = "jane" }, invalid: []string{"email"}},
		{name: "long first name", mutate: func(f *ContactForm) { f.FirstName = strings.Repeat("a", 101) }, invalid: []string{"first_name"}},
		{name: "unknown nationality", mutate: func(f *ContactForm) { f.MaidNationality = "XXX" }, invalid: []string{"maid_nationality"}},
		{name: "profile code not offered", mutate: func(f *ContactForm) { f.MaidType = "TRF" }, invalid: []string{"maid_type"}},
		{name: "unknown responsibility", mutate: func(f *ContactForm) { f.MaidMainResponsibility = "CFP" }, invalid: []string{"maid_main_responsibility"}},
		{
			name:    "several at once",
			mutate:  func(f *ContactForm) { f.Remarks = ""; f.LastName = "" },
			invalid: []string{"last_name", "remarks"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			errs := f.Validate()
			assert.ElementsMatch(t, tc.invalid, keys(errs), "errors: %v", errs)
		})
	}
}

func keys(fe FieldErrors) []string {
	out := []string{}
	for k := range fe {
		out = append(out, k)
	}
	return out
}

func TestValidate_Messages(t *testing.T) {
	f := validForm()
	f.Email = ""
	f.MaidMinAge = 22
	f.MaidNationality = "XXX"

	errs := f.Validate()
	assert.Equal(t, "This field is required.", errs["email"])
	assert.Equal(t, "Ensure this value is greater than or equal to 23.", errs["maid_min_age"])
	assert.Equal(t, "Select a valid choice. XXX is not one of the available choices.", errs["maid_nationality"])
	assert.Contains(t, errs.Error(), "email: This field is required.")
}

func TestNew_RequiresRequest(t *testing.T) {
	f, err := New(nil)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrNoRequest))
}

func TestNew_FormEncoded(t *testing.T) {
	values := url.Values{
		"first_name":               {"Jane"},
		"last_name":                {"Tan"},
		"contact_number":           {"91234567"},
		"email":                    {"jane@example.org"},
		"maid_nationality":         {"IDN"},
		"maid_main_responsibility": {"GEH"},
		"maid_type":                {"NEW"},
		"maid_min_age":             {"23"},
		"maid_max_age":             {"50"},
		"remarks":                  {"Two kids."},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := New(req)
	require.NoError(t, err)
	assert.Same(t, req, f.Request())
	assert.Equal(t, 23, f.MaidMinAge)
	assert.Equal(t, "IDN", f.MaidNationality)
	assert.Empty(t, f.Validate())

	e := f.ToEnquiry()
	assert.Equal(t, "jane@example.org", e.Email)
	assert.Equal(t, 50, e.MaidMaxAge)
}

func TestNew_JSON(t *testing.T) {
	body := `{"first_name":"Jane","email":"jane@example.org","maid_min_age":22}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	f, err := New(req)
	require.NoError(t, err)
	errs := f.Validate()
	assert.Contains(t, errs, "maid_min_age")
	assert.Contains(t, errs, "last_name")
	assert.NotContains(t, errs, "first_name")
}

func TestNew_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"maid_min_age":"old"}`))
	req.Header.Set("Content-Type", "application/json")

	_, err := New(req)
	assert.True(t, errors.Is(err, ErrBind))
}

func TestLayout(t *testing.T) {
	rows := Layout()
	require.Len(t, rows, 6)

	widths := [][]int{}
	fields := []string{}
	for _, row := range rows {
		w := []int{}
		for _, col := range row.Columns {
			w = append(w, col.Width)
			fields = append(fields, col.Field)
		}
		widths = append(widths, w)
	}
	assert.Equal(t, [][]int{{6, 6}, {6, 6}, {4, 4, 4}, {6, 6}, {12}, {12}}, widths)
	assert.Equal(t, []string{
		"first_name", "last_name", "contact_number", "email",
		"maid_nationality", "maid_main_responsibility", "maid_type",
		"maid_min_age", "maid_max_age", "remarks", SubmitField,
	}, fields)
	assert.Len(t, rows[3].Columns[0].Choices, 28)
}
