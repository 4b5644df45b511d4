package model

import "time"

// PushSubscription holds a browser push subscription of an agency staff
// member who wants to hear about new enquiries.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey;size:512" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;size:255;not null" json:"p256dh"`
	Auth      string    `gorm:"size:255;not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PushSubscription) TableName() string { return "push_subscriptions" }
