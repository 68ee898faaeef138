package config

import (
	"fmt"

	"github.com/Ayushyadav168/TradeFlow-Main/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the ledger database handle. It stays nil unless LEDGER_DSN is set;
// the default deployment keeps transactions in memory.
var DB *gorm.DB

// InitDB opens the postgres connection for the durable ledger and migrates
// its schema.
func InitDB() error {
	if AppConfig == nil || AppConfig.LedgerDSN == "" {
		return fmt.Errorf("ledger DSN not configured")
	}

	db, err := gorm.Open(postgres.Open(AppConfig.LedgerDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to ledger database: %v", err)
	}

	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		return fmt.Errorf("failed to migrate ledger schema: %v", err)
	}

	DB = db
	return nil
}
