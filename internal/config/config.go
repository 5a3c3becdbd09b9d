package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string `env:"DB_HOST,notEmpty"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	AppPort    string `env:"APP_PORT" envDefault:"8080"`
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	JWTSecret  string `env:"JWT_SECRET,notEmpty"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`

	// Remote notification service; empty disables subscriptions.
	NotificationURL     string        `env:"NOTIFICATION_URL"`
	NotificationTimeout time.Duration `env:"NOTIFICATION_TIMEOUT" envDefault:"3s"`
	NotificationRetries int           `env:"NOTIFICATION_RETRIES" envDefault:"2"`

	// Home page
	NewInterviewType       int           `env:"NEW_INTERVIEW_TYPE" envDefault:"1"`
	NewInterviewsLimit     int           `env:"NEW_INTERVIEWS_LIMIT" envDefault:"20"`
	PopularCategoriesLimit int           `env:"POPULAR_CATEGORIES_LIMIT" envDefault:"6"`
	QueryTimeout           time.Duration `env:"QUERY_TIMEOUT" envDefault:"5s"`
	HomeLabel              string        `env:"HOME_LABEL" envDefault:"Home"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}
