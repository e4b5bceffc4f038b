package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string `env:"APP_PORT" env-default:"8080"`

	DBDSN string `env:"DB_DSN"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	PostsPerPage int `env:"POSTS_PER_PAGE" env-default:"10"`

	CountSyncInterval time.Duration `env:"COUNT_SYNC_INTERVAL" env-default:"60s"`
	CountSyncBatch    int           `env:"COUNT_SYNC_BATCH" env-default:"100"`
}

// C holds the loaded configuration for the whole process.
var C Config

// Init loads .env (if present) and the environment into C.
func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	if err := cleanenv.ReadEnv(&C); err != nil {
		Logger.Fatal("Failed to read configuration: " + err.Error())
	}

	if C.DBDSN == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if C.JWTSecret == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}
}
