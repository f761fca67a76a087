package env

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
)

// Load reads the .env file (when present) and populates every configuration
// group. Called once from main before anything else is constructed.
func Load() {
	loadEnv()
	loadServerEnv()
	loadDbEnv()
	loadAuthEnv()
	loadBillingEnv()
	loadNotificationEnv()
	loadLookupEnv()
}

func loadEnv() {
	pterm.DefaultLogger.Info(
		"Loading environment variables...",
	)

	err := godotenv.Load(".env")
	if err != nil {
		pterm.DefaultLogger.Warn(
			fmt.Sprintf("Some error occurred loading the environment file at root directory: %s", err),
		)
		pterm.DefaultLogger.Warn(
			"Using environment variables from the system",
		)
	}
}
