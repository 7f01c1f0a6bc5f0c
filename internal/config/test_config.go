package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the database settings for integration tests from TEST_* variables
//
// Database.Host stays empty when TEST_DB_HOST is not set; integration tests skip in that case.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file from the repository root (optional)
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Host = os.Getenv("TEST_DB_HOST")
	if cfg.Database.Host == "" {
		return cfg, nil
	}

	var err error
	if cfg.Database.Port, err = intEnv("TEST_DB_PORT", 3306); err != nil {
		return nil, err
	}
	cfg.Database.User = stringEnv("TEST_DB_USER", "root")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = stringEnv("TEST_DB_NAME", "kanji_test")

	cfg.JWT.Secret = stringEnv("TEST_JWT_SECRET", "integration-test-secret")
	cfg.JWT.AccessTokenExpiry = time.Hour

	return cfg, nil
}
