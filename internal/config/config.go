package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// Migrations switches the DB layer from AutoMigrate to the SQL
	// migrations in ./migrations.
	Migrations bool

	ResendAPIKey string
	MailFrom     string
	MailReplyTo  string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:devis.db?cache=shared")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Migrations = ParseBool("MIGRATIONS", false)
	cfg.ResendAPIKey = getEnv("RESEND_API_KEY", "")
	cfg.MailFrom = getEnv("MAIL_FROM", "Ferro Design <devis@ferrodesign.fr>")
	cfg.MailReplyTo = getEnv("MAIL_REPLY_TO", "atelier@ferrodesign.fr")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
