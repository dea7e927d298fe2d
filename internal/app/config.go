package app

import (
	"fmt"

	"github.com/cwhitfield/cert-tracker/internal/logger"
	"github.com/cwhitfield/cert-tracker/internal/utils"
)

// Config carries every externally supplied value the app needs. It is
// loaded once in main and injected into constructors; nothing reads
// the environment ambiently per call.
type Config struct {
	Port         string
	APIVersion   int
	APIBaseURL   string
	DBDriver     string
	DBPath       string
	PostgresDSN  string
	ImageRoot    string
	ReminderFile string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	apiVersion := utils.GetEnvAsInt("API_VERSION", 1, log)
	apiBaseURL := utils.GetEnv(
		"API_BASE_URL",
		fmt.Sprintf("http://127.0.0.1:%s/api/v%d", port, apiVersion),
		log,
	)
	dbDriver := utils.GetEnv("DB_DRIVER", "sqlite", log)
	dbPath := utils.GetEnv("DB_PATH", "cert_tracker.db", log)

	pgHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	pgPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	pgUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	pgPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	pgName := utils.GetEnv("POSTGRES_NAME", "cert_tracker", log)
	pgDSN := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgName,
	)

	imageRoot := utils.GetEnv("IMAGE_ROOT", "static/images/data", log)
	reminderFile := utils.GetEnv("REMINDER_FILE", "email/data.json", log)

	return Config{
		Port:         port,
		APIVersion:   apiVersion,
		APIBaseURL:   apiBaseURL,
		DBDriver:     dbDriver,
		DBPath:       dbPath,
		PostgresDSN:  pgDSN,
		ImageRoot:    imageRoot,
		ReminderFile: reminderFile,
	}
}
