package env

import "os"

var (
	PlateLookupBaseURL string
	PlateLookupAPIKey  string
)

func loadLookupEnv() {
	PlateLookupBaseURL = os.Getenv("PLATE_LOOKUP_BASE_URL")
	PlateLookupAPIKey = os.Getenv("PLATE_LOOKUP_API_KEY")
}
