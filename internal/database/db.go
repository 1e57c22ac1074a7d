package database

import (
	"fmt"
	"time"

	"buffet/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the database, configures the connection pool and applies
// the schema.
func Open(driver, dsn string, logMode bool, logger *zap.Logger) (*gorm.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.LogMode(logMode)

	// A single connection keeps an in-memory SQLite database alive and shared.
	if driver == DriverSQLite {
		db.DB().SetMaxOpenConns(1)
	} else {
		db.DB().SetMaxIdleConns(10)
		db.DB().SetMaxOpenConns(100)
		db.DB().SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database ready", zap.String("driver", driver))
	return db, nil
}

// Migrate creates or updates all tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Food{},
		&models.Meal{},
	).Error; err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
