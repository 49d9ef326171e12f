// Package config resolves runtime settings from built-in defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	// ConfigPathEnv names the variable that points at a YAML config file.
	ConfigPathEnv = "HEALTHTRACK_CONFIG"

	minSecretKeyLength = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port           string        `yaml:"port"`
	DBPath         string        `yaml:"db_path"`
	StorageBackend string        `yaml:"storage_backend"`
	SecretKey      string        `yaml:"secret_key"`
	CORSOrigin     string        `yaml:"cors_origin"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	AppEnv         string        `yaml:"app_env"`
	LogLevel       string        `yaml:"log_level"`
	CookieSecure   bool          `yaml:"cookie_secure"`
	Timezone       string        `yaml:"timezone"`
}

func Default() Config {
	return Config{
		Port:           "10000",
		DBPath:         filepath.Join("data", "healthtrack.db"),
		StorageBackend: BackendSQLite,
		CORSOrigin:     "*",
		BcryptCost:     10,
		TokenTTL:       7 * 24 * time.Hour,
		AppEnv:         EnvProduction,
		LogLevel:       "info",
		Timezone:       "UTC",
	}
}

// Load reads path when it is non-empty (falling back to $HEALTHTRACK_CONFIG),
// applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.DBPath, "DB_PATH")
	overrideString(&cfg.StorageBackend, "STORAGE_BACKEND")
	overrideString(&cfg.SecretKey, "SECRET_KEY")
	overrideString(&cfg.CORSOrigin, "CORS_ORIGIN")
	overrideString(&cfg.AppEnv, "APP_ENV")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.Timezone, "TZ")

	if raw := strings.TrimSpace(os.Getenv("BCRYPT_COST")); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST must be an integer: %w", err)
		}
		cfg.BcryptCost = cost
	}
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL must be a duration: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE must be a boolean: %w", err)
		}
		cfg.CookieSecure = secure
	}
	return nil
}

func overrideString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

// Validate checks everything except the secret key, which only serve needs.
func (cfg Config) Validate() error {
	if _, err := ParsePort(cfg.Port); err != nil {
		return err
	}
	switch cfg.StorageBackend {
	case BackendSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("DB_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: %s, %s", BackendSQLite, BackendMemory)
	}
	if cfg.AppEnv != EnvDevelopment && cfg.AppEnv != EnvProduction {
		return fmt.Errorf("APP_ENV must be one of: %s, %s", EnvDevelopment, EnvProduction)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return errors.New("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	return nil
}

// ResolveSecretKey returns the signing key or an error when it is missing,
// short or a known placeholder.
func (cfg Config) ResolveSecretKey() ([]byte, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return nil, errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return nil, errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return nil, fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return []byte(secret), nil
}

func ParsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return port, nil
}

func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (cfg Config) IsDevelopment() bool {
	return cfg.AppEnv == EnvDevelopment
}
