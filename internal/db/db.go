package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-admissions-backend/config"
	"clinic-admissions-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Patient{},
		&model.Room{},
		&model.Occupancy{},
		&model.PushSubscription{},
	)
}

// SeedRooms provisions the configured rooms into an empty rooms table.
// Once any room exists the seed list is ignored, so live capacity
// counters survive restarts; several rooms may share a room type.
func SeedRooms(db *gorm.DB, rooms []config.RoomSeed) error {
	for _, seed := range rooms {
		if seed.MaxCapacity < 1 {
			return fmt.Errorf("room seed %q has invalid max_capacity %d", seed.RoomType, seed.MaxCapacity)
		}
	}

	var existing int64
	if err := db.Model(&model.Room{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if existing > 0 {
		log.Printf("Rooms table already holds %d rooms; skipping seed", existing)
		return nil
	}

	for _, seed := range rooms {
		room := model.Room{
			RoomType:        seed.RoomType,
			CurrentCapacity: seed.MaxCapacity,
			MaxCapacity:     seed.MaxCapacity,
		}
		if err := db.Create(&room).Error; err != nil {
			return fmt.Errorf("failed to seed room type %q: %w", seed.RoomType, err)
		}
		log.Printf("Seeded room %d (%s) with %d beds", room.ID, room.RoomType, room.MaxCapacity)
	}
	return nil
}
