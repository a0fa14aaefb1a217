package model

import "time"

// PushSubscription holds a browser push subscription for bed-available
// alerts. A subscription is keyed to the rooms the subscriber wants to
// watch.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Rooms []*Room `gorm:"many2many:subscription_room_mapping;"`
}
