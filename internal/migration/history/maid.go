package history

import (
	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

// careEntity is the shape shared by every care/domestic-skill satellite.
func careEntity(entity, table string, remarks schema.ChoiceSet, remarksLength int) m.CreateEntity {
	return m.CreateEntity{
		Entity: entity,
		Table:  table,
		Fields: []schema.Field{
			schema.AutoID(),
			schema.Integer("preference").WithChoices(schema.CarePreference).WithDefault(3),
			schema.Boolean("willingness", true).WithChoices(schema.Willingness),
			schema.Boolean("experience", true).WithChoices(schema.Experience),
			schema.Text("remarks", remarksLength).WithChoices(remarks).Nullable(),
			schema.LongText("other_remarks").WithDefault(""),
			schema.OneToOne("maid", "Maid"),
		},
	}
}

var maidInitial = m.Step{
	Group:        "maid",
	Name:         "0001_initial",
	Dependencies: []m.Key{agencyInitial.Key()},
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "Maid",
			Table:  "maids",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("reference_number", 255),
				schema.Text("maid_type", 3).WithChoices(schema.MaidType).WithDefault("NEW"),
				schema.PositiveInteger("salary"),
				schema.PositiveInteger("loan_amount"),
				schema.PositiveInteger("days_off"),
				schema.Boolean("passport_status", false).WithChoices(schema.PassportStatus),
				schema.Text("repatriation_airport", 100),
				schema.Text("remarks", 255),
				schema.DateTime("created_on"),
				schema.DateTime("updated_on"),
				schema.Boolean("complete", false),
				schema.Boolean("biodata_complete", false),
				schema.Boolean("family_details_complete", false),
				schema.Boolean("infant_child_care_complete", false),
				schema.Boolean("elderly_care_complete", false),
				schema.Boolean("disabled_care_complete", false),
				schema.Boolean("general_housework_complete", false),
				schema.Boolean("cooking_complete", false),
				schema.Boolean("published", false),
				schema.Boolean("featured", false),
				schema.ForeignKey("agency", "Agency", schema.Cascade),
			},
		},
		m.CreateEntity{
			Entity: "MaidWorkDuty",
			Table:  "maid_work_duties",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("name", 5).WithChoices(schema.WorkDuty),
			},
		},
		m.CreateEntity{
			Entity: "MaidStatus",
			Table:  "maid_statuses",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Boolean("ipa_approved", false),
				schema.Date("bond_date"),
				schema.Date("sip_date"),
				schema.Date("thumbprint_date"),
				schema.Date("deployment_date"),
				schema.OneToOne("maid", "Maid"),
			},
		},
		careEntity("MaidInfantChildCare", "maid_infant_child_cares", schema.InfantChildCareRemarks, 7),
		careEntity("MaidGeneralHousework", "maid_general_houseworks", schema.GeneralHouseworkRemarks, 7),
		m.CreateEntity{
			Entity: "MaidFoodHandlingPreference",
			Table:  "maid_food_handling_preferences",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("preference", 1).WithChoices(schema.FoodRestriction).WithDefault("P"),
				schema.ForeignKey("maid", "Maid", schema.Cascade),
			},
		},
		m.CreateEntity{
			Entity: "MaidFamilyDetails",
			Table:  "maid_family_details",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("marital_status", 2).WithChoices(schema.MaritalStatus).WithDefault("S"),
				schema.PositiveInteger("number_of_children").WithDefault(0),
				schema.Text("age_of_children", 50).WithDefault("N.A"),
				schema.PositiveInteger("number_of_siblings").WithDefault(0),
				schema.OneToOne("maid", "Maid"),
			},
		},
		m.CreateEntity{
			Entity: "MaidEmploymentHistory",
			Table:  "maid_employment_histories",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.DateTime("start_date"),
				schema.DateTime("end_date"),
				schema.Text("country", 3).WithChoices(schema.EmploymentCountry),
				schema.Duration("work_duration"),
				schema.ForeignKey("maid", "Maid", schema.Cascade),
			},
		},
		careEntity("MaidElderlyCare", "maid_elderly_cares", schema.ElderlyCareRemarks, 7),
		careEntity("MaidDisabledCare", "maid_disabled_cares", schema.DisabledCareRemarks, 7),
		m.CreateEntity{
			Entity: "MaidDietaryRestriction",
			Table:  "maid_dietary_restrictions",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("restriction", 1).WithChoices(schema.FoodRestriction).WithDefault("P"),
				schema.ForeignKey("maid", "Maid", schema.Cascade),
			},
		},
		careEntity("MaidCooking", "maid_cookings", schema.CookingRemarks, 8),
		m.CreateEntity{
			Entity: "MaidBiodata",
			Table:  "maid_biodata",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("name", 255).Nullable(),
				schema.Integer("age").Nullable(),
				schema.Text("country_of_origin", 3).WithChoices(schema.CountryOfOrigin).Nullable(),
				schema.PositiveInteger("height").Nullable(),
				schema.PositiveInteger("weight").Nullable(),
				schema.Text("place_of_birth", 25).Nullable(),
				schema.Text("address_1", 100).Nullable(),
				schema.Text("address_2", 100).Nullable(),
				schema.Text("religion", 4).WithChoices(schema.Religion).WithDefault("NONE"),
				schema.OneToOne("maid", "Maid"),
			},
		},
	},
}

var maidEmploymentWorkDuties = m.Step{
	Group:        "maid",
	Name:         "0002_maidemploymenthistory_work_duties",
	Dependencies: []m.Key{maidInitial.Key()},
	Operations: []m.Operation{
		m.AddRelation{
			Entity: "MaidEmploymentHistory",
			ManyToMany: &m.ManyToMany{
				Name:   "work_duties",
				Target: "MaidWorkDuty",
				Table:  "maid_employment_history_work_duties",
			},
		},
	},
}

var maidStatusTransferDates = m.Step{
	Group:        "maid",
	Name:         "0003_maidstatus_transfer_dates",
	Dependencies: []m.Key{maidInitial.Key()},
	Operations: []m.Operation{
		m.AddField{Entity: "MaidStatus", Field: schema.Date("date_of_application_for_transfer")},
		m.AddField{Entity: "MaidStatus", Field: schema.Date("fdw_work_commencement_date")},
	},
}

var maidSeedWorkDuties = m.Step{
	Group:        "maid",
	Name:         "0004_seed_maidworkduty",
	Dependencies: []m.Key{maidInitial.Key()},
	Operations: []m.Operation{
		m.SeedChoices{Entity: "MaidWorkDuty", Field: "name"},
	},
}
