// Package admin is the relational lending store behind the admin console.
// It tracks stock levels, members, borrow transactions and the lending
// policy; bibliographic data stays in the catalog service, referenced here
// by book ID.
package admin

import (
	"database/sql"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libriscore/libris/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Stock{},
		&entities.Member{},
		&entities.Transaction{},
		&entities.Policy{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedPolicy(); err != nil {
		return nil, fmt.Errorf("failed to seed lending policy: %w", err)
	}

	log.Printf("Admin database initialized at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLDB exposes the underlying connection for the session store.
func (d *Database) SQLDB() (*sql.DB, error) {
	return d.DB.DB()
}

// seedPolicy ensures the single policy row exists with default lending
// rules. Existing values are never overwritten.
func (d *Database) seedPolicy() error {
	var existing entities.Policy
	result := d.DB.First(&existing, 1)
	if result.Error == gorm.ErrRecordNotFound {
		policy := entities.Policy{
			ID:               1,
			BorrowPeriodDays: 28,
			MaxBooksPerUser:  5,
			FinePerDay:       0.5,
		}
		return d.DB.Create(&policy).Error
	}
	return result.Error
}
