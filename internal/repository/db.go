package repository

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

var db *gorm.DB

// InitDB opens the database connection for the given dialect ("sqlite3"
// or "postgres") and migrates the schema.
func InitDB(dialect, dsn string) error {
	var err error
	db, err = gorm.Open(dialect, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	db.AutoMigrate(&GuestRecord{}, &MenuItemRecord{})
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection.
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
