package env

import (
	"os"

	"github.com/pterm/pterm"
)

var (
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
)

func loadNotificationEnv() {
	SMTPHost = os.Getenv("SMTP_HOST")
	SMTPPort = os.Getenv("SMTP_PORT")
	SMTPUser = os.Getenv("SMTP_USER")
	SMTPPassword = os.Getenv("SMTP_PASSWORD")
	SMTPFrom = os.Getenv("SMTP_FROM")

	if SMTPPort == "" {
		SMTPPort = "587"
	}
	if SMTPHost == "" {
		pterm.DefaultLogger.Warn("SMTP is not configured; notifications will be logged only")
	}
}
