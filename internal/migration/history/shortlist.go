package history

import (
	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

var shortlistInitial = m.Step{
	Group:        "shortlist",
	Name:         "0001_initial",
	Dependencies: []m.Key{maidInitial.Key()},
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "Shortlist",
			Table:  "shortlists",
			Fields: []schema.Field{
				schema.AutoID(),
				schema.Text("token", 36),
				schema.DateTime("created_on"),
			},
			Unique: [][]string{{"token"}},
		},
		m.AddRelation{
			Entity: "Shortlist",
			ManyToMany: &m.ManyToMany{
				Name:   "maids",
				Target: "Maid",
				Table:  "shortlist_maids",
			},
		},
	},
}
