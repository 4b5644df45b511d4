package history

import (
	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

var enquiryInitial = m.Step{
	Group: "enquiry",
	Name:  "0001_initial",
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "ContactEnquiry",
			Table:  "contact_enquiries",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("first_name", 100),
				schema.Text("last_name", 100),
				schema.Text("contact_number", 100),
				schema.Text("email", 255),
				schema.Text("maid_nationality", 3).WithChoices(schema.EnquiryNationality),
				schema.Text("maid_main_responsibility", 3).WithChoices(schema.EnquiryResponsibility),
				schema.Text("maid_type", 3).WithChoices(schema.EnquiryMaidType),
				schema.Integer("maid_min_age").WithChoices(schema.MaidAge),
				schema.Integer("maid_max_age").WithChoices(schema.MaidAge),
				schema.LongText("remarks"),
				schema.DateTime("created_on"),
			},
		},
	},
}

var enquiryShortlisted = m.Step{
	Group:        "enquiry",
	Name:         "0002_shortlistedenquiry",
	Dependencies: []m.Key{enquiryInitial.Key(), maidInitial.Key()},
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "ShortlistedEnquiry",
			Table:  "shortlisted_enquiries",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("name", 100),
				schema.Text("mobile_number", 100),
				schema.Text("email", 255),
				schema.Text("property_type", 7).WithChoices(schema.PropertyType).WithDefault("2RMHDB"),
				schema.PositiveInteger("no_of_family_members"),
				schema.PositiveInteger("no_of_below_5"),
				schema.Text("remarks", 3000),
				schema.Boolean("active", true),
				schema.Boolean("approved", false),
				schema.DateTime("created_on"),
			},
		},
		m.AddRelation{
			Entity: "ShortlistedEnquiry",
			ManyToMany: &m.ManyToMany{
				Name:   "maids",
				Target: "Maid",
				Table:  "shortlisted_enquiry_maids",
			},
		},
	},
}
