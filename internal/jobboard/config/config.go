// Package config loads the job board settings from a YAML file, with every
// key overridable by an environment variable of the same name.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "internal/jobboard/config/config.yaml"

// Config struct for YAML configuration
type Config struct {
	HTTPPort         int           `yaml:"HTTP_PORT"`
	GRPCPort         int           `yaml:"GRPC_PORT"`
	BasePath         string        `yaml:"BASE_PATH"`
	DBDriver         string        `yaml:"DB_DRIVER"`
	DBHost           string        `yaml:"DB_HOST"`
	DBPort           int           `yaml:"DB_PORT"`
	DBUser           string        `yaml:"DB_USER"`
	DBPassword       string        `yaml:"DB_PASSWORD"`
	DBName           string        `yaml:"DB_NAME"`
	DBSSLMode        string        `yaml:"DB_SSLMODE"`
	DBConnectRetries uint64        `yaml:"DB_CONNECT_RETRIES"`
	JWTSecret        string        `yaml:"JWT_SECRET"`
	TokenTTL         time.Duration `yaml:"TOKEN_TTL"`
	BcryptCost       int           `yaml:"BCRYPT_COST"`
	KafkaBrokers     []string      `yaml:"KAFKA_BROKERS"`
	Topic            string        `yaml:"TOPIC"`
	CORSOrigins      []string      `yaml:"CORS_ORIGINS"`
	LogDevelopment   bool          `yaml:"LOG_DEVELOPMENT"`
}

// ErrMissingSecret is returned when no JWT secret is configured.
var ErrMissingSecret = errors.New("JWT_SECRET is required")

// Load reads the file at path, applies environment overrides and defaults,
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BASE_PATH":   &c.BasePath,
		"DB_DRIVER":   &c.DBDriver,
		"DB_HOST":     &c.DBHost,
		"DB_USER":     &c.DBUser,
		"DB_PASSWORD": &c.DBPassword,
		"DB_NAME":     &c.DBName,
		"DB_SSLMODE":  &c.DBSSLMode,
		"JWT_SECRET":  &c.JWTSecret,
		"TOPIC":       &c.Topic,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"HTTP_PORT":   &c.HTTPPort,
		"GRPC_PORT":   &c.GRPCPort,
		"DB_PORT":     &c.DBPort,
		"BCRYPT_COST": &c.BcryptCost,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	lists := map[string]*[]string{
		"KAFKA_BROKERS": &c.KafkaBrokers,
		"CORS_ORIGINS":  &c.CORSOrigins,
	}
	for key, dst := range lists {
		if v, ok := lookup(key); ok {
			*dst = splitList(v)
		}
	}

	if v, ok := lookup("DB_CONNECT_RETRIES"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DB_CONNECT_RETRIES: %w", err)
		}
		c.DBConnectRetries = n
	}
	if v, ok := lookup("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v, ok := lookup("LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT: %w", err)
		}
		c.LogDevelopment = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.GRPCPort == 0 {
		c.GRPCPort = 50051
	}
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.DBDriver == "" {
		c.DBDriver = "postgres"
	}
	if c.DBPort == 0 {
		c.DBPort = 5432
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.DBConnectRetries == 0 {
		c.DBConnectRetries = 5
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.Topic == "" {
		c.Topic = "jobboard-events"
	}
}

// splitList parses a comma separated env value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
