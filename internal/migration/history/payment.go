package history

import (
	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

// Invoices outlive their agency: the reference is cleared, not cascaded.
var paymentInitial = m.Step{
	Group:        "payment",
	Name:         "0001_initial",
	Dependencies: []m.Key{agencyInitial.Key()},
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "Invoice",
			Table:  "invoices",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.DateTime("created_on"),
				schema.ForeignKey("agency", "Agency", schema.SetNull),
			},
		},
	},
}
