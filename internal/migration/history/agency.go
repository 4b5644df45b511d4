package history

import (
	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

var agencyInitial = m.Step{
	Group: "agency",
	Name:  "0001_initial",
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "Agency",
			Table:  "agencies",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("name", 100),
				schema.Text("license_number", 100),
				schema.Text("website_uri", 100).Nullable(),
				schema.LongText("profile").WithDefault(""),
				schema.LongText("services").WithDefault(""),
				schema.PositiveInteger("amount_of_biodata").WithDefault(0),
				schema.PositiveInteger("amount_of_biodata_allowed").WithDefault(0),
				schema.PositiveInteger("amount_of_featured_biodata").WithDefault(0),
				schema.PositiveInteger("amount_of_featured_biodata_allowed").WithDefault(0),
				schema.PositiveInteger("amount_of_employees").WithDefault(0),
				schema.PositiveInteger("amount_of_employees_allowed").WithDefault(0),
				schema.Boolean("active", true),
			},
		},
		m.CreateEntity{
			Entity: "AgencyEmployee",
			Table:  "agency_employees",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("name", 255),
				schema.Text("contact_number", 50),
				schema.Text("ea_personnel_number", 50).WithDefault("NA"),
				schema.Text("email", 254),
				schema.ForeignKey("agency", "Agency", schema.Cascade),
				schema.Text("role", 1).WithChoices(schema.EmployeeRoleInitial).WithDefault("S"),
				schema.Boolean("deleted", false),
				schema.Boolean("published", false),
			},
		},
	},
}

var agencyEmployeeRoleChoices = m.Step{
	Group:        "agency",
	Name:         "0002_alter_agencyemployee_role",
	Dependencies: []m.Key{agencyInitial.Key()},
	Operations: []m.Operation{
		m.AlterField{
			Entity: "AgencyEmployee",
			Field:  schema.Text("role", 1).WithChoices(schema.EmployeeRole).WithDefault("S"),
		},
	},
}

var agencyEmployeeRoleLength = m.Step{
	Group:        "agency",
	Name:         "0003_alter_agencyemployee_role_length",
	Dependencies: []m.Key{agencyEmployeeRoleChoices.Key()},
	Operations: []m.Operation{
		m.AlterField{
			Entity: "AgencyEmployee",
			Field:  schema.Text("role", 2).WithChoices(schema.EmployeeRole).WithDefault("S"),
		},
	},
}
