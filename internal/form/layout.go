package form

import "onlinemaid-backend/internal/schema"

// SubmitField names the column holding the submit button.
const SubmitField = "submit"

// Column is one cell of the form grid. Widths are out of 12.
type Column struct {
	Field   string          `json:"field"`
	Label   string          `json:"label"`
	Width   int             `json:"width"`
	Choices []schema.Choice `json:"choices,omitempty"`
}

type Row struct {
	Columns []Column `json:"columns"`
}

// Layout is the presentation grid of the contact form. It carries no
// validation behaviour.
func Layout() []Row {
	return []Row{
		{Columns: []Column{
			{Field: "first_name", Label: "First Name", Width: 6},
			{Field: "last_name", Label: "Last Name", Width: 6},
		}},
		{Columns: []Column{
			{Field: "contact_number", Label: "Contact Number", Width: 6},
			{Field: "email", Label: "Email", Width: 6},
		}},
		{Columns: []Column{
			{Field: "maid_nationality", Label: "Maid's Nationality", Width: 4, Choices: schema.EnquiryNationality.Choices},
			{Field: "maid_main_responsibility", Label: "Maid's main responsibility", Width: 4, Choices: schema.EnquiryResponsibility.Choices},
			{Field: "maid_type", Label: "Type of maid", Width: 4, Choices: schema.EnquiryMaidType.Choices},
		}},
		{Columns: []Column{
			{Field: "maid_min_age", Label: "Minimum age of Maid", Width: 6, Choices: schema.MaidAge.Choices},
			{Field: "maid_max_age", Label: "Maximum age of Maid", Width: 6, Choices: schema.MaidAge.Choices},
		}},
		{Columns: []Column{
			{Field: "remarks", Label: "Remarks", Width: 12},
		}},
		{Columns: []Column{
			{Field: SubmitField, Label: "Submit", Width: 12},
		}},
	}
}
