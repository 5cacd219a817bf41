// ABOUTME: Configuration loading and parsing for starship-api
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// MinJWTKeyLength is the minimum length in bytes for the JWT signing key.
// Shorter keys are a configuration error and refuse to start the server.
const MinJWTKeyLength = 32

// DefaultTokenTTL is used when jwt.expire is not configured.
const DefaultTokenTTL = 60 * time.Minute

// Config represents the complete starship-api configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Swapi    SwapiConfig    `yaml:"swapi"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// JWTConfig holds token signing configuration.
// Key, issuer and audience are fixed at load time; nothing reads them
// from ambient state at request time.
type JWTConfig struct {
	Key      string        `yaml:"key"`
	Issuer   string        `yaml:"issuer"`
	Audience string        `yaml:"audience"`
	Expire   time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	ExpireRaw string `yaml:"expire"`
}

// OpenAIConfig holds the question-answering passthrough configuration
type OpenAIConfig struct {
	Key     string `yaml:"key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// SwapiConfig holds the catalog import source configuration
type SwapiConfig struct {
	URL string `yaml:"url"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	applyDefaults(&cfg)

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.JWT.Key == "" {
		return fmt.Errorf("jwt.key is required")
	}
	if len(c.JWT.Key) < MinJWTKeyLength {
		return fmt.Errorf("jwt.key must be at least %d bytes, got %d", MinJWTKeyLength, len(c.JWT.Key))
	}

	if c.JWT.Issuer == "" {
		return fmt.Errorf("jwt.issuer is required")
	}
	if c.JWT.Audience == "" {
		return fmt.Errorf("jwt.audience is required")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.JWT.ExpireRaw != "" {
		cfg.JWT.Expire, err = time.ParseDuration(cfg.JWT.ExpireRaw)
		if err != nil {
			return fmt.Errorf("parsing jwt.expire %q: %w", cfg.JWT.ExpireRaw, err)
		}
	}

	return nil
}

// applyDefaults fills in optional fields that were left unset
func applyDefaults(cfg *Config) {
	if cfg.JWT.Expire == 0 {
		cfg.JWT.Expire = DefaultTokenTTL
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com"
	}
	if cfg.Swapi.URL == "" {
		cfg.Swapi.URL = "https://swapi.info"
	}
}
