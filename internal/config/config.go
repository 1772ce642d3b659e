package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tally-app/tally/internal/profile"
)

// FileName is the default config file name.
const FileName = "tally.yaml"

// Classifier kinds.
const (
	ClassifierNone   = "none"
	ClassifierHTTP   = "http"
	ClassifierGemini = "gemini"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	DataDir    string               `yaml:"data_dir"`
	Log        LogConfig            `yaml:"log"`
	Classifier ClassifierConfig     `yaml:"classifier"`
	Enrich     EnrichConfig         `yaml:"enrich"`
	Profiles   []profile.Definition `yaml:"profiles,omitempty"`

	// dir is the directory of the loaded file; relative paths resolve
	// against it.
	dir string
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// ClassifierConfig selects and configures the categorization service.
type ClassifierConfig struct {
	Kind     string        `yaml:"kind"` // none, http or gemini
	Endpoint string        `yaml:"endpoint,omitempty"`
	Model    string        `yaml:"model,omitempty"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

// EnrichConfig controls when enrichment runs.
type EnrichConfig struct {
	OnImport bool   `yaml:"on_import"`
	Schedule string `yaml:"schedule"` // cron spec used by "tally watch"
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default with
// relative paths resolved against the file's directory.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.dir = filepath.Dir(path)
		return cfg, nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Classifier: ClassifierConfig{
			Kind:    ClassifierNone,
			Timeout: 30 * time.Second,
		},
		Enrich: EnrichConfig{
			OnImport: true,
			Schedule: "@every 15m",
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Classifier.Kind {
	case ClassifierNone, ClassifierGemini:
	case ClassifierHTTP:
		if c.Classifier.Endpoint == "" {
			return fmt.Errorf("classifier.endpoint is required for kind %q", ClassifierHTTP)
		}
	default:
		return fmt.Errorf("unknown classifier kind %q", c.Classifier.Kind)
	}
	if c.Classifier.Timeout < 0 {
		return fmt.Errorf("classifier.timeout must not be negative")
	}
	return nil
}

// DataPath returns the data directory, resolved against the config file's
// directory when relative.
func (c *Config) DataPath() string {
	if filepath.IsAbs(c.DataDir) || c.dir == "" {
		return c.DataDir
	}
	return filepath.Join(c.dir, c.DataDir)
}

// DBPath returns the database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataPath(), "tally.db")
}

// LoadEnvFile loads variables from a .env file into the process
// environment. A missing file is not an error. Variables that are already
// set are kept.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from TALLY_* environment variables.
func (c *Config) ApplyEnv() error {
	c.DataDir = getEnv("TALLY_DATA_DIR", c.DataDir)
	c.Log.Level = getEnv("TALLY_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("TALLY_LOG_FORMAT", c.Log.Format)
	c.Classifier.Kind = getEnv("TALLY_CLASSIFIER", c.Classifier.Kind)
	c.Classifier.Endpoint = getEnv("TALLY_CLASSIFIER_ENDPOINT", c.Classifier.Endpoint)
	c.Classifier.Model = getEnv("TALLY_CLASSIFIER_MODEL", c.Classifier.Model)
	c.Classifier.APIKey = getEnv("GEMINI_API_KEY", c.Classifier.APIKey)
	c.Enrich.Schedule = getEnv("TALLY_ENRICH_SCHEDULE", c.Enrich.Schedule)

	var err error
	if c.Classifier.Timeout, err = getEnvAsDuration("TALLY_CLASSIFIER_TIMEOUT", c.Classifier.Timeout); err != nil {
		return err
	}
	if c.Enrich.OnImport, err = getEnvAsBool("TALLY_ENRICH_ON_IMPORT", c.Enrich.OnImport); err != nil {
		return err
	}
	return c.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
