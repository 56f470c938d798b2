package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverFS     = "fs"
	DriverValkey = "valkey"
)

// Config holds the recipedex configuration shared by the service and the trainer.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Trainer   TrainerConfig   `yaml:"trainer"`
	Search    SearchConfig    `yaml:"search"`
	Images    ImagesConfig    `yaml:"images"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. Empty keys disable auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig selects where artifacts live.
type StorageConfig struct {
	Driver           string   `yaml:"driver"` // fs, valkey (default: fs)
	Dir              string   `yaml:"dir"`    // fs only
	Addrs            []string `yaml:"addrs"`  // valkey only
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ArtifactsConfig names the three trained artifacts.
type ArtifactsConfig struct {
	Vectorizer string `yaml:"vectorizer"`
	Index      string `yaml:"index"`
	Table      string `yaml:"table"`
}

// TrainerConfig holds offline training settings.
type TrainerConfig struct {
	RawPath     string `yaml:"raw_path"`
	Encoding    string `yaml:"encoding"` // latin1, utf8 (default: latin1)
	MaxFeatures int    `yaml:"max_features"`
	Neighbors   int    `yaml:"neighbors"`
}

// SearchConfig holds query-time settings.
type SearchConfig struct {
	DefaultResults int `yaml:"default_results"`
	MaxResults     int `yaml:"max_results"`
}

// ImagesConfig locates recipe images.
type ImagesConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFS
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "."
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "recipedex:artifact:"
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}
	if c.Artifacts.Vectorizer == "" {
		c.Artifacts.Vectorizer = "vectorizer.json.gz"
	}
	if c.Artifacts.Index == "" {
		c.Artifacts.Index = "nn_model.json.gz"
	}
	if c.Artifacts.Table == "" {
		c.Artifacts.Table = "recipes_meta.csv"
	}
	if c.Trainer.RawPath == "" {
		c.Trainer.RawPath = "Tagged_Food_Recipes.csv"
	}
	if c.Trainer.Encoding == "" {
		c.Trainer.Encoding = "latin1"
	}
	if c.Trainer.MaxFeatures <= 0 {
		c.Trainer.MaxFeatures = 5000
	}
	if c.Trainer.Neighbors <= 0 {
		c.Trainer.Neighbors = 5
	}
	if c.Search.DefaultResults <= 0 {
		c.Search.DefaultResults = 10
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 50
	}
	if c.Images.Dir == "" {
		c.Images.Dir = "Food Images"
	}
	if c.Images.URLPrefix == "" {
		c.Images.URLPrefix = "images"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverFS:
	case DriverValkey:
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for the valkey driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverFS, DriverValkey, c.Storage.Driver)
	}
	switch strings.ToLower(c.Trainer.Encoding) {
	case "latin1", "iso-8859-1", "iso8859-1", "utf8", "utf-8":
	default:
		return fmt.Errorf("trainer.encoding must be \"latin1\" or \"utf8\", got %q", c.Trainer.Encoding)
	}
	if c.Search.DefaultResults > c.Search.MaxResults {
		return fmt.Errorf("search.default_results (%d) exceeds search.max_results (%d)",
			c.Search.DefaultResults, c.Search.MaxResults)
	}
	if strings.Trim(c.Images.URLPrefix, "/") == "" {
		return fmt.Errorf("images.url_prefix must not be empty")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
