package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-admissions-backend/internal/model"
)

// ErrNotApplicable is the single rejection surfaced for operations that
// cannot be applied: unknown ids, duplicate phone numbers, full rooms,
// double admits and double checkouts all collapse into it. Handlers map
// it to a bad request without further detail.
var ErrNotApplicable = errors.New("operation not applicable")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	RegisterPatient(ctx context.Context, draft *model.Patient) error
	SearchPatients(ctx context.Context, query string) ([]model.Patient, error)
	AdmitPatient(ctx context.Context, patientID uuid.UUID, roomID int64) error
	// CheckoutPatient returns the id of the room that regained a bed.
	CheckoutPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
}

// admittedExpr projects the derived admitted flag. The occupancy record is
// the single source of truth for admission; patients carry no stored flag.
const admittedExpr = "EXISTS (SELECT 1 FROM occupancies WHERE occupancies.patient_id = patients.id) AS is_admitted"

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for callers that need raw access,
// such as the subscription handlers and the notification worker.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RegisterPatient persists a validated draft. The server assigns the
// identity; the caller's admitted state is ignored. Registration with an
// already-known phone number is rejected.
func (s *gormStore) RegisterPatient(ctx context.Context, draft *model.Patient) error {
	draft.ID = uuid.Nil
	draft.IsAdmitted = false

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Patient{}).
			Where("phone_number = ?", draft.PhoneNumber).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for duplicate phone number: %w", err)
		}
		if count > 0 {
			return ErrNotApplicable
		}

		if err := tx.Create(draft).Error; err != nil {
			// The unique index backstops the pre-check under concurrency.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrNotApplicable
			}
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return nil
	})
}

// SearchPatients returns every patient whose name or phone number contains
// the query as a case-sensitive substring, in registration order. The
// empty query matches all patients. Matching runs in Go so the contains
// semantics are identical across database drivers.
func (s *gormStore) SearchPatients(ctx context.Context, query string) ([]model.Patient, error) {
	var patients []model.Patient
	if err := s.db.WithContext(ctx).
		Model(&model.Patient{}).
		Select("patients.*, " + admittedExpr).
		Order("created_at").
		Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}

	matches := make([]model.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(p.Name, query) || strings.Contains(p.PhoneNumber, query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// AdmitPatient transitions a free patient into the given room, consuming
// one bed. The capacity check and decrement are a single conditional
// UPDATE, and the unique index on occupancies.patient_id rejects a racing
// second admit, so two concurrent admits can neither overdraw a room nor
// double-book a patient.
func (s *gormStore) AdmitPatient(ctx context.Context, patientID uuid.UUID, roomID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient model.Patient
		err := tx.First(&patient, "id = ?", patientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotApplicable
		}
		if err != nil {
			return fmt.Errorf("failed to fetch patient %s: %w", patientID, err)
		}

		var occupied int64
		if err := tx.Model(&model.Occupancy{}).
			Where("patient_id = ?", patientID).
			Count(&occupied).Error; err != nil {
			return fmt.Errorf("failed to check occupancy for patient %s: %w", patientID, err)
		}
		if occupied > 0 {
			return ErrNotApplicable
		}

		res := tx.Model(&model.Room{}).
			Where("id = ? AND current_capacity > 0", roomID).
			Update("current_capacity", gorm.Expr("current_capacity - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to consume capacity of room %d: %w", roomID, res.Error)
		}
		if res.RowsAffected == 0 {
			// Unknown room and full room are indistinguishable here.
			return ErrNotApplicable
		}

		occupancy := model.Occupancy{
			RoomID:     roomID,
			PatientID:  patientID,
			AdmittedAt: time.Now().UTC(),
		}
		if err := tx.Create(&occupancy).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race against a concurrent admit of the same
				// patient; the capacity decrement rolls back with us.
				return ErrNotApplicable
			}
			return fmt.Errorf("failed to record occupancy for patient %s: %w", patientID, err)
		}
		return nil
	})
}

// CheckoutPatient releases an admitted patient's bed and removes the
// occupancy record. The delete is keyed by the occupancy's primary key and
// its affected-row count decides a race between two checkouts: the loser
// rolls back its capacity increment and is rejected.
func (s *gormStore) CheckoutPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	var freedRoomID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient model.Patient
		err := tx.First(&patient, "id = ?", patientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotApplicable
		}
		if err != nil {
			return fmt.Errorf("failed to fetch patient %s: %w", patientID, err)
		}

		var occupancy model.Occupancy
		err = tx.First(&occupancy, "patient_id = ?", patientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Free patient, or admitted-without-occupancy corruption;
			// either way the checkout is not applicable.
			return ErrNotApplicable
		}
		if err != nil {
			return fmt.Errorf("failed to fetch occupancy for patient %s: %w", patientID, err)
		}

		// Delete the occupancy before touching the capacity ledger. A
		// concurrent checkout of the same patient commits its delete
		// first, so the loser sees zero rows here and bails out before
		// the capacity guard can misread the race as a corrupt ledger.
		del := tx.Delete(&model.Occupancy{}, occupancy.ID)
		if del.Error != nil {
			return fmt.Errorf("failed to delete occupancy %d: %w", occupancy.ID, del.Error)
		}
		if del.RowsAffected == 0 {
			// A concurrent checkout got here first.
			return ErrNotApplicable
		}

		res := tx.Model(&model.Room{}).
			Where("id = ? AND current_capacity < max_capacity", occupancy.RoomID).
			Update("current_capacity", gorm.Expr("current_capacity + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to release capacity of room %d: %w", occupancy.RoomID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("capacity ledger of room %d is out of range", occupancy.RoomID)
		}

		freedRoomID = occupancy.RoomID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return freedRoomID, nil
}

// ListRooms returns all rooms with their live capacity.
func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return rooms, nil
}
