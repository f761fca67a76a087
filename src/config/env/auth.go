package env

import (
	"os"

	"github.com/pterm/pterm"
)

var JWTSecret string

func loadAuthEnv() {
	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		pterm.DefaultLogger.Warn("JWT_SECRET is not set; authenticated endpoints will reject every request")
	}
}
