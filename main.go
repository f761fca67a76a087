package main

import (
	"database/sql"
	"fmt"
	"os"

	billing_handler "github.com/motorpass/motorpass-server/src/billing/handler"
	billing_service "github.com/motorpass/motorpass-server/src/billing/service"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
	"github.com/motorpass/motorpass-server/src/config/env"
	"github.com/motorpass/motorpass-server/src/database"
	database_migrate "github.com/motorpass/motorpass-server/src/database/migrate"
	lookup_service "github.com/motorpass/motorpass-server/src/lookup/service"
	notification_service "github.com/motorpass/motorpass-server/src/notification/service"
	"github.com/motorpass/motorpass-server/src/server"
	"github.com/pressly/goose/v3"
	"github.com/pterm/pterm"
)

// @title						MotorPass Server API
// @version					0.1.0
// @description				Backend server for the MotorPass vehicle membership club. Handles member wallets, per-vehicle subscriptions and payment processor reconciliation.
// @contact.name				MotorPass Dev Team
// @contact.url				https://github.com/motorpass
// @contact.email				dev@motorpass.club
// @license.name				MIT
// @license.url				https://opensource.org/licenses/MIT
// @BasePath					/
// @schemes					http https
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						Authorization
func main() {
	env.Load()

	// Check for CLI commands
	if len(os.Args) > 1 {
		command := os.Args[1]

		switch command {
		case "migrate:down":
			runMigrationDown()
			return
		case "migrate:status":
			runMigrationStatus()
			return
		case "migrate:down-to":
			if len(os.Args) < 3 {
				pterm.DefaultLogger.Error("Usage: ./motorpass-server migrate:down-to <version>")
				os.Exit(1)
			}
			runMigrationDownTo(os.Args[2])
			return
		default:
			pterm.DefaultLogger.Error(fmt.Sprintf("Unknown command: %s", command))
			pterm.DefaultLogger.Info("Available commands: migrate:down, migrate:status, migrate:down-to <version>")
			os.Exit(1)
		}
	}

	db, err := database.Connect()
	if err != nil {
		pterm.DefaultLogger.Fatal(fmt.Sprintf("Failed to connect to database: %s", err))
	}

	if err := database_migrate.Run(db); err != nil {
		pterm.DefaultLogger.Fatal(fmt.Sprintf("Failed to run migrations: %s", err))
	}

	var provider payment.Provider
	if env.StripeSecretKey != "" {
		provider, err = payment.NewStripeProvider(
			env.StripeSecretKey,
			env.StripeWebhookSecret,
			env.StripeVehiclePriceID,
		)
		if err != nil {
			pterm.DefaultLogger.Fatal(fmt.Sprintf("Failed to initialize payment provider: %s", err))
		}
	} else {
		pterm.DefaultLogger.Warn("STRIPE_SECRET_KEY not set, billing endpoints will return 503")
	}

	billingService := billing_service.New(
		billing_service.NewGormStore(db),
		provider,
		notification_service.NewSMTPNotifier(),
		billing_service.Config{
			DefaultSuccessURL: env.BillingSuccessURL,
			DefaultCancelURL:  env.BillingCancelURL,
		},
	)
	billingHandler := billing_handler.New(billingService, provider)
	plateResolver := lookup_service.NewHTTPPlateResolver(env.PlateLookupBaseURL, env.PlateLookupAPIKey)

	server.Serve(db, billingHandler, plateResolver)
}

func openMigrationDB() (*sql.DB, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	return database_migrate.OpenSQL()
}

func runMigrationDown() {
	pterm.DefaultLogger.Info("Rolling back last migration...")

	sqlDB, err := openMigrationDB()
	if err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Failed to open database connection: %s", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := goose.Down(sqlDB, database_migrate.MigrationsDir); err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Failed to roll back migration: %s", err))
		os.Exit(1)
	}

	pterm.DefaultLogger.Info("Migration rolled back successfully")
}

func runMigrationStatus() {
	pterm.DefaultLogger.Info("Checking migration status...")

	sqlDB, err := openMigrationDB()
	if err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Failed to open database connection: %s", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := goose.Status(sqlDB, database_migrate.MigrationsDir); err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Failed to check migration status: %s", err))
		os.Exit(1)
	}
}

func runMigrationDownTo(version string) {
	pterm.DefaultLogger.Info(fmt.Sprintf("Rolling back to migration version %s...", version))

	sqlDB, err := openMigrationDB()
	if err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Failed to open database connection: %s", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	versionInt := int64(0)
	if _, err := fmt.Sscanf(version, "%d", &versionInt); err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Invalid version format: %s", version))
		os.Exit(1)
	}

	if err := goose.DownTo(sqlDB, database_migrate.MigrationsDir, versionInt); err != nil {
		pterm.DefaultLogger.Error(fmt.Sprintf("Failed to roll back to version %s: %s", version, err))
		os.Exit(1)
	}

	pterm.DefaultLogger.Info(fmt.Sprintf("Successfully rolled back to migration version %s", version))
}
