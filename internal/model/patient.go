package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a registered patient.
//
// IsAdmitted is not a stored column: a patient counts as admitted exactly
// when an Occupancy record exists for them. Queries that return patients
// project the flag with an EXISTS subquery so the JSON payload keeps the
// field.
type Patient struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"size:40;not null"`
	PhoneNumber string    `json:"phoneNumber" gorm:"size:12;uniqueIndex;not null"`
	Age         int       `json:"age" gorm:"not null"`
	Gender      string    `json:"gender" gorm:"size:16;not null"`
	IsAdmitted  bool      `json:"isAdmitted" gorm:"->;-:migration"`
	CreatedAt   time.Time `json:"-" gorm:"not null"`
	UpdatedAt   time.Time `json:"-" gorm:"not null"`
}

// BeforeCreate assigns the server-side identity.
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
