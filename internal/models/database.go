package models

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

// Connect opens the database and migrates the schema.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		Profile{},
		Month{}, FixedPayment{}, Category{}, Transaction{},
		YearlyBudget{}, IncomeSource{}, IncomeEntry{}, Deduction{},
		Section{}, YearlyCategory{}, CategoryEntry{},
	)
	if err != nil {
		return err
	}

	DB = db
	return nil
}
