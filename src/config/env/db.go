package env

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var DatabaseURL string

func loadDbEnv() {
	DatabaseURL = os.Getenv("DATABASE_URL")
	if DatabaseURL != "" {
		return
	}

	// Fall back to discrete variables for container setups.
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	name := os.Getenv("POSTGRES_DB")

	if host == "" {
		pterm.DefaultLogger.Warn("DATABASE_URL and POSTGRES_HOST both unset; using localhost defaults")
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	if user == "" {
		user = "postgres"
	}
	if name == "" {
		name = "motorpass"
	}

	DatabaseURL = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, name,
	)
}
