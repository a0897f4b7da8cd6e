package admin_config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DevelopmentBaseURL is the API base used when nothing else is configured.
	DevelopmentBaseURL = "http://localhost:8080/api"
)

type Config struct {
	Env        string `yaml:"env"`
	APIOrigin  string `yaml:"apiOrigin"`
	APIService string `yaml:"apiService"`
	ConsulHost string `yaml:"consulHost"`
	// LowStockThreshold marks inventory rows in the inventory listing.
	LowStockThreshold int `yaml:"lowStockThreshold"`

	// Email and Password sign in before each command when both are set. The password is
	// only read from the environment.
	Email    string `yaml:"email"`
	Password string `yaml:"-"`
}

// Discoverer resolves a service name to host:port.
type Discoverer interface {
	DiscoverService(serviceName string) (string, error)
}

// LoadFile loads and parses a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = EnvDevelopment
	}
	if cfg.APIService == "" {
		cfg.APIService = "store-backend"
	}
	if cfg.LowStockThreshold == 0 {
		cfg.LowStockThreshold = 10
	}
}

// Load builds the configuration from, in increasing priority: defaults, the YAML file at
// path (optional), the environment (after .env files) and the env flag.
func Load(path, env string, envFiles ...string) (*Config, error) {
	// load .env file if it exists
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		log.Printf("Error loading env files: %v", err)
	}

	cfg := &Config{}
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Env = getEnv("ADMIN_ENV", cfg.Env)
	cfg.APIOrigin = getEnv("ADMIN_API_ORIGIN", cfg.APIOrigin)
	cfg.APIService = getEnv("ADMIN_API_SERVICE", cfg.APIService)
	cfg.ConsulHost = getEnv("CONSUL_HOST", cfg.ConsulHost)
	cfg.Email = getEnv("ADMIN_EMAIL", cfg.Email)
	cfg.Password = getEnv("ADMIN_PASSWORD", "")
	if env != "" {
		cfg.Env = env
	}
	applyDefaults(cfg)

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return nil, fmt.Errorf("unknown environment %q, want %s or %s", cfg.Env, EnvDevelopment, EnvProduction)
	}
	return cfg, nil
}

// HasCredentials reports whether the CLI should sign in before running a command.
func (c *Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

// NeedsDiscovery reports whether BaseURL will ask Consul for the API address.
func (c *Config) NeedsDiscovery() bool {
	return c.APIOrigin == "" && c.Env == EnvProduction && c.ConsulHost != ""
}

// BaseURL resolves the API base path: the configured origin, else the address Consul
// reports for APIService in production, else the development default.
func (c *Config) BaseURL(d Discoverer) (string, error) {
	if c.APIOrigin != "" {
		return strings.TrimRight(c.APIOrigin, "/") + "/api", nil
	}
	if c.Env != EnvProduction {
		return DevelopmentBaseURL, nil
	}
	if !c.NeedsDiscovery() || d == nil {
		return "", fmt.Errorf("production needs ADMIN_API_ORIGIN or CONSUL_HOST")
	}

	endpoint, err := d.DiscoverService(c.APIService)
	if err != nil {
		return "", err
	}
	return "http://" + endpoint + "/api", nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
