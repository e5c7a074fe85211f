// Package config loads the process configuration from .env files, an optional
// YAML or JSON file and MINDBUFFER_* environment variables, in that order.
package config

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/settings"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit path is given. It may be absent.
const DefaultFile = "mindbuffer.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MINDBUFFER_"

// Storage backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Storage selects and configures the key-value backend.
type Storage struct {
	Backend       string `yaml:"backend" json:"backend"`
	RedisAddr     string `yaml:"redis_addr" json:"redis_addr"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db"`
	SQLitePath    string `yaml:"sqlite_path" json:"sqlite_path"`
	EncryptionKey string `yaml:"encryption_key" json:"encryption_key"` // hex, 32 bytes
	RedactSecrets bool   `yaml:"redact_secrets" json:"redact_secrets"`
}

// Key decodes EncryptionKey. It returns nil when encryption is off.
func (s Storage) Key() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Config is the resolved process configuration.
type Config struct {
	// Settings seed the settings store: they apply wherever nothing was saved.
	Settings       domain.UserSettings
	Storage        Storage
	HTTPAddr       string
	LogLevel       string
	RequestTimeout time.Duration
	MockDelay      time.Duration
}

type fileConfig struct {
	Settings       map[string]any `yaml:"settings" json:"settings"`
	Storage        Storage        `yaml:"storage" json:"storage"`
	HTTPAddr       string         `yaml:"http_addr" json:"http_addr"`
	LogLevel       string         `yaml:"log_level" json:"log_level"`
	RequestTimeout string         `yaml:"request_timeout" json:"request_timeout"`
	MockDelay      string         `yaml:"mock_delay" json:"mock_delay"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Settings:       domain.DefaultSettings(),
		Storage:        Storage{Backend: BackendMemory, RedisAddr: "localhost:6379", SQLitePath: filepath.Join(".mindbuffer", "mindbuffer.db")},
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		RequestTimeout: 20 * time.Second,
		MockDelay:      500 * time.Millisecond,
	}
}

// Load reads .env from the working directory, then delegates to LoadFrom with
// the process environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(path, os.LookupEnv)
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// LoadFrom resolves the configuration from the file at path and lookup.
// An empty path reads DefaultFile if present; an explicit path must exist.
func LoadFrom(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	fc, err := readFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		fc = &fileConfig{}
	} else if err != nil {
		return nil, err
	}

	if err := cfg.apply(fc); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &fc)
	} else {
		err = yaml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &fc, nil
}

func (c *Config) apply(fc *fileConfig) error {
	if len(fc.Settings) > 0 {
		merged, err := settings.Merge(c.Settings, fc.Settings)
		if err != nil {
			return err
		}
		c.Settings = merged
	}

	if fc.Storage.Backend != "" {
		c.Storage.Backend = fc.Storage.Backend
	}
	if fc.Storage.RedisAddr != "" {
		c.Storage.RedisAddr = fc.Storage.RedisAddr
	}
	if fc.Storage.SQLitePath != "" {
		c.Storage.SQLitePath = fc.Storage.SQLitePath
	}
	c.Storage.RedisDB = fc.Storage.RedisDB
	c.Storage.EncryptionKey = fc.Storage.EncryptionKey
	c.Storage.RedactSecrets = fc.Storage.RedactSecrets

	if fc.HTTPAddr != "" {
		c.HTTPAddr = fc.HTTPAddr
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return c.setDurations(fc.RequestTimeout, fc.MockDelay)
}

func (c *Config) setDurations(timeout, delay string) error {
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid request timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return fmt.Errorf("invalid mock delay: %w", err)
		}
		c.MockDelay = d
	}
	return nil
}

// settingsEnv maps environment suffixes to settings JSON fields.
var settingsEnv = map[string]string{
	"NICKNAME":    "nickname",
	"TONE":        "tone",
	"LANGUAGE":    "language",
	"DAILY_LIMIT": "dailyLimit",
	"AI_PROVIDER": "aiProvider",
	"API_KEY":     "apiKey",
	"API_URL":     "apiUrl",
	"API_MODEL":   "apiModel",
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	get := func(suffix string) (string, bool) {
		v, ok := lookup(EnvPrefix + suffix)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	patch := map[string]any{}
	for suffix, field := range settingsEnv {
		if v, ok := get(suffix); ok {
			patch[field] = v
		}
	}
	if len(patch) > 0 {
		merged, err := settings.Merge(c.Settings, patch)
		if err != nil {
			return err
		}
		c.Settings = merged
	}

	if v, ok := get("STORAGE"); ok {
		c.Storage.Backend = v
	}
	if v, ok := get("REDIS_ADDR"); ok {
		c.Storage.RedisAddr = v
	}
	if v, ok := get("REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Storage.RedisDB = db
	}
	if v, ok := get("SQLITE_PATH"); ok {
		c.Storage.SQLitePath = v
	}
	if v, ok := get("ENCRYPTION_KEY"); ok {
		c.Storage.EncryptionKey = v
	}
	if v, ok := get("REDACT_SECRETS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sREDACT_SECRETS: %w", EnvPrefix, err)
		}
		c.Storage.RedactSecrets = b
	}
	if v, ok := get("HTTP_ADDR"); ok {
		c.HTTPAddr = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}

	timeout, _ := get("REQUEST_TIMEOUT")
	delay, _ := get("MOCK_DELAY")
	return c.setDurations(timeout, delay)
}

// Validate checks the storage selection and the encryption key.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if _, err := c.Storage.Key(); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("mock delay must not be negative")
	}
	return nil
}
