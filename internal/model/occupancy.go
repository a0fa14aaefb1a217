package model

import (
	"time"

	"github.com/google/uuid"
)

// Occupancy links an admitted patient to the room they currently occupy.
// The unique index on PatientID is the hard guarantee that a patient holds
// at most one bed at a time; it is what a racing second Admit trips over.
type Occupancy struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RoomID     int64     `json:"roomId" gorm:"not null;index"`
	PatientID  uuid.UUID `json:"patientId" gorm:"type:uuid;not null;uniqueIndex"`
	AdmittedAt time.Time `json:"admittedAt" gorm:"not null"`

	// Associations
	Room    Room    `json:"-" gorm:"foreignKey:RoomID"`
	Patient Patient `json:"-" gorm:"foreignKey:PatientID"`
}
