package env

import (
	"os"

	"github.com/pterm/pterm"
)

var (
	ServerPort string
	AppBaseURL string // Public base URL of the member-facing application
)

func loadServerEnv() {
	ServerPort = os.Getenv("SERVER_PORT")
	if ServerPort == "" {
		ServerPort = "8080"
	}

	AppBaseURL = os.Getenv("APP_BASE_URL")
	if AppBaseURL == "" {
		AppBaseURL = "http://localhost:" + ServerPort
		pterm.DefaultLogger.Warn("APP_BASE_URL not set, defaulting to " + AppBaseURL)
	}
}
