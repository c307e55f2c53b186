package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey means the process cannot talk to Gemini and must not start.
var ErrMissingAPIKey = errors.New("config: GEMINI_API_KEY not set (use env var, .env file or gemini_api_key)")

// Config holds all application configuration.
type Config struct {
	Port           int           `yaml:"port"`
	GeminiAPIKey   string        `yaml:"gemini_api_key"`
	GeminiModel    string        `yaml:"gemini_model"`
	GeminiBaseURL  string        `yaml:"gemini_base_url"`
	ModelTimeout   time.Duration `yaml:"model_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	ValidateResult bool          `yaml:"validate_result"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:         5000,
		GeminiModel:  "gemini-2.0-flash",
		ModelTimeout: 60 * time.Second,
		MaxBodyBytes: 1 << 20,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// LoadDotEnv copies variables from a .env file into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load reads a YAML file (if path is non-empty), then applies environment
// variable overrides. An empty path returns defaults + env overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MINDWEAVE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid MINDWEAVE_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("MINDWEAVE_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("MINDWEAVE_GEMINI_BASE_URL"); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := os.Getenv("MINDWEAVE_MODEL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid MINDWEAVE_MODEL_TIMEOUT %q: %w", v, err)
		}
		cfg.ModelTimeout = d
	}
	if v := os.Getenv("MINDWEAVE_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid MINDWEAVE_MAX_BODY_BYTES %q: %w", v, err)
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("MINDWEAVE_VALIDATE_RESULT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid MINDWEAVE_VALIDATE_RESULT %q: %w", v, err)
		}
		cfg.ValidateResult = b
	}
	if v := os.Getenv("MINDWEAVE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MINDWEAVE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.ModelTimeout < 0 {
		return fmt.Errorf("config: negative model_timeout %s", c.ModelTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
