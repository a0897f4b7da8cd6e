package backend_config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	GRPCPort    int
	ServiceName string

	DB DB

	SeedData       bool
	SessionSecret  string
	RequireAuth    bool
	SecureCookie   bool
	RedisAddr      string
	ConsulHost     string
	UploadMaxBytes int64
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Enabled reports whether PostgreSQL is configured. Without a password the volatile
// repository is used.
func (db DB) Enabled() bool {
	return db.Password != ""
}

func (db DB) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		db.Host, db.Port, db.User, db.Password, db.Name)
}

// Load reads the environment, after loading a .env file when one is present.
func Load(envFiles ...string) (*Config, error) {
	// load .env file if it exists
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "store-backend"),
		DB: DB{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "store_user"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "store_db"),
		},
		SessionSecret: getEnv("SESSION_SECRET", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		ConsulHost:    getEnv("CONSUL_HOST", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.GRPCPort, err = getEnvInt("GRPC_PORT", 9080); err != nil {
		return nil, err
	}
	if cfg.SeedData, err = getEnvBool("SEED_DATA", true); err != nil {
		return nil, err
	}
	if cfg.RequireAuth, err = getEnvBool("REQUIRE_AUTH", false); err != nil {
		return nil, err
	}
	if cfg.SecureCookie, err = getEnvBool("SECURE_COOKIE", false); err != nil {
		return nil, err
	}
	upload, err := getEnvInt("UPLOAD_MAX_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(upload)

	if cfg.SessionSecret == "" {
		if cfg.RequireAuth {
			return nil, fmt.Errorf("SESSION_SECRET is required when REQUIRE_AUTH is set")
		}
		log.Println("SESSION_SECRET not set, using an insecure development secret")
		cfg.SessionSecret = "dev-session-secret"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", key, err)
	}
	return b, nil
}
