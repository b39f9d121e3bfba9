package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string `validate:"required,numeric"`
	Env                     string `validate:"oneof=development production test"`
	FirebaseCredentialsPath string
	PostgresConnStr         string `validate:"required"`
	MongoURI                string `validate:"required"`
	MongoDB                 string `validate:"required"`
	RedisURL                string

	DBMaxOpenConns    int           `validate:"min=1"`
	DBMaxIdleConns    int           `validate:"min=0"`
	DBConnMaxIdleTime time.Duration `validate:"min=0"`
	DBConnectTimeout  time.Duration `validate:"gt=0"`

	FanoutWorkers   int `validate:"min=0"`
	FanoutQueueSize int `validate:"min=1"`

	// UserCacheTTL of zero disables the Redis user cache.
	UserCacheTTL time.Duration `validate:"min=0"`
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDB:                 getEnv("MONGO_DB", "community"),
		RedisURL:                getEnv("REDIS_URL", ""),
		DBMaxOpenConns:          getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:          getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleTime:       getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second),
		DBConnectTimeout:        getEnvDuration("DB_CONNECT_TIMEOUT", 2*time.Second),
		FanoutWorkers:           getEnvInt("FANOUT_WORKERS", 4),
		FanoutQueueSize:         getEnvInt("FANOUT_QUEUE_SIZE", 1024),
		UserCacheTTL:            getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
