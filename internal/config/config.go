// Package config reads process settings from the environment, optionally
// layered over a YAML file named by CONFIG_FILE.
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

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
)

type Config struct {
	StoreBackend    string        `yaml:"store_backend"`
	TranscriptTable string        `yaml:"transcript_table"`
	SQLitePath      string        `yaml:"sqlite_path"`
	ParamPrefix     string        `yaml:"param_prefix"`
	OpenAIAPIKey    string        `yaml:"openai_api_key"`
	OpenAIBaseURL   string        `yaml:"openai_base_url"`
	OpenAIModel     string        `yaml:"openai_model"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"`
	MaxQuestionLen  int           `yaml:"max_question_length"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ParamCacheTTL   time.Duration `yaml:"param_cache_ttl"`
	ListenAddr      string        `yaml:"listen_addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
}

// Load builds the configuration: YAML file (if CONFIG_FILE is set), then
// environment overrides, then defaults. The result is validated.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	if path, ok := lookup("CONFIG_FILE"); ok && strings.TrimSpace(path) != "" {
		fileCfg, err := LoadFile(strings.TrimSpace(path))
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file without applying defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("STORE_BACKEND", &c.StoreBackend)
	str("TRANSCRIPT_TABLE", &c.TranscriptTable)
	str("SQLITE_PATH", &c.SQLitePath)
	str("PARAM_PREFIX", &c.ParamPrefix)
	str("OPENAI_API_KEY", &c.OpenAIAPIKey)
	str("OPENAI_BASE_URL", &c.OpenAIBaseURL)
	str("OPENAI_MODEL", &c.OpenAIModel)
	str("LISTEN_ADDR", &c.ListenAddr)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)

	if err := envDuration(lookup, "PROVIDER_TIMEOUT", &c.ProviderTimeout); err != nil {
		return err
	}
	if err := envDuration(lookup, "PARAM_CACHE_TTL", &c.ParamCacheTTL); err != nil {
		return err
	}
	if v, ok := lookup("MAX_QUESTION_LENGTH"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: MAX_QUESTION_LENGTH: %w", err)
		}
		c.MaxQuestionLen = n
	}
	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("config: MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	return nil
}

func envDuration(lookup func(string) (string, bool), key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}

func (c *Config) applyDefaults() {
	if c.StoreBackend == "" {
		c.StoreBackend = BackendMemory
	}
	c.StoreBackend = strings.ToLower(c.StoreBackend)
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4o"
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = 30 * time.Second
	}
	if c.MaxQuestionLen < 0 {
		c.MaxQuestionLen = 0
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}
	if c.ParamCacheTTL <= 0 {
		c.ParamCacheTTL = 15 * time.Minute
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.TranscriptTable == "" {
			return errors.New("config: TRANSCRIPT_TABLE is required for the dynamodb store")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.OpenAIAPIKey == "" && strings.TrimSpace(c.ParamPrefix) == "" {
		return errors.New("config: one of OPENAI_API_KEY or PARAM_PREFIX is required")
	}
	return nil
}

// NeedsAWS reports whether any configured component talks to AWS.
func (c *Config) NeedsAWS() bool {
	return c.StoreBackend == BackendDynamoDB || c.OpenAIAPIKey == ""
}
