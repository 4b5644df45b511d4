package history

import (
	m "onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/schema"
)

var notificationInitial = m.Step{
	Group: "notification",
	Name:  "0001_initial",
	Operations: []m.Operation{
		m.CreateEntity{
			Entity: "PushSubscription",
			Table:  "push_subscriptions",
			Fields: []schema.Field{
				{Name: "endpoint", Kind: schema.KindText, MaxLength: 512, Primary: true},
				schema.Text("p256dh", 255),
				schema.Text("auth", 255),
				schema.DateTime("created_at"),
			},
		},
	},
}
