package database_migrate

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
	"github.com/motorpass/motorpass-server/src/config/env"
	_ "github.com/motorpass/motorpass-server/src/database/migrations"
	"github.com/pressly/goose/v3"
	"github.com/pterm/pterm"
	"gorm.io/gorm"
)

const MigrationsDir = "src/database/migrations"

// Run applies automatic ORM migrations followed by goose Go migrations.
// Called once from main after the database connection is established.
func Run(db *gorm.DB) error {
	if err := automaticMigrations(db); err != nil {
		return err
	}
	return gooseMigrations()
}

func automaticMigrations(db *gorm.DB) error {
	pterm.DefaultLogger.Info("Adding automatic migrations")
	err := db.AutoMigrate(
		&member_entity.Member{},
		&vehicle_entity.Vehicle{},
	)
	if err != nil {
		return fmt.Errorf("automatic migrations failed: %w", err)
	}
	return nil
}

func gooseMigrations() error {
	pterm.DefaultLogger.Info("Applying goose migrations")

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	// Goose runs on its own database/sql handle (pq driver), separate from
	// the GORM pool.
	sqlDB, err := OpenSQL()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.Up(sqlDB, MigrationsDir); err != nil {
		return fmt.Errorf("goose migrations failed: %w", err)
	}
	return nil
}

// OpenSQL opens the plain database/sql connection used by goose commands.
func OpenSQL() (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", env.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open sql connection for goose: %w", err)
	}
	return sqlDB, nil
}
