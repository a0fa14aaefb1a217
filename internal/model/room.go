package model

import "time"

// Room represents a ward room with a fixed number of beds.
// Rooms are provisioned from seed configuration, never through the API;
// CurrentCapacity is only ever moved by Admit and Checkout and stays
// within [0, MaxCapacity].
type Room struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	RoomType        string    `json:"roomType" gorm:"size:64;not null"`
	CurrentCapacity int       `json:"currentCapacity" gorm:"not null"`
	MaxCapacity     int       `json:"maxCapacity" gorm:"not null"`
	CreatedAt       time.Time `json:"-" gorm:"not null"`
	UpdatedAt       time.Time `json:"-" gorm:"not null"`
}
