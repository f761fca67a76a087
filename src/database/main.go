package database

import (
	"fmt"
	"time"

	"github.com/motorpass/motorpass-server/src/config/env"
	"github.com/pterm/pterm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide connection, established exactly once by Connect
// before the server starts. Request paths receive it by injection; the
// package variable exists for migrations and CLI subcommands.
var DB *gorm.DB

// Connect opens the Postgres connection and configures the pool.
func Connect() (*gorm.DB, error) {
	pterm.DefaultLogger.Info("Connecting to the database...")

	db, err := gorm.Open(postgres.Open(env.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = db
	pterm.DefaultLogger.Info("Database connection established")
	return db, nil
}
