package db

import (
	"shop_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Models lists every table owned by the application
var Models = []any{
	&domain.User{},
	&domain.Category{},
	&domain.Product{},
	&domain.Order{},
	&domain.OrderItem{},
	&domain.PaymentAttempt{},
}

// Config is the GORM configuration shared by the server and migrations.
// References between collections are resolved at read time and may dangle,
// so no foreign key constraints are created. Unique index violations surface
// as gorm.ErrDuplicatedKey.
func Config() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	}
}

// Open connects to MySQL with the shared configuration
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), Config())
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing columns and indexes
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
