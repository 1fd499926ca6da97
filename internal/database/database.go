package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// Connect opens the store. A postgres:// DSN selects PostgreSQL; anything
// else is treated as a SQLite path for local development and tests.
func Connect(dsn string, logSQL bool) (*gorm.DB, error) {
	cfg := &gorm.Config{
		// The store defines no cascade or restrict semantics: deleting a
		// user or stall must leave dependent rows dangling, so relations
		// stay logical and no FK constraints are created.
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	if !logSQL {
		cfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates the four tables and, on PostgreSQL, the partial unique
// index that backs the one-active-booking-per-slot invariant.
func Migrate(db *gorm.DB, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_booking_per_slot
			ON bookings (slot_id)
			WHERE payment_status <> 'CANCELED'
		`).Error
	}
	return nil
}
