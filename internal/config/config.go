package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CatalogConfig locates the catalog file and names its columns.
type CatalogConfig struct {
	Path              string   `yaml:"path" validate:"required"`
	Sheet             string   `yaml:"sheet,omitempty"`
	DescriptionColumn string   `yaml:"description_column" validate:"required"`
	CategoryColumn    string   `yaml:"category_column" validate:"required"`
	IDColumn          string   `yaml:"id_column" validate:"required"`
	NutrientColumns   []string `yaml:"nutrient_columns,omitempty" validate:"omitempty,unique,dive,required"`
}

// EncoderConfig tunes the feature encoder fit.
type EncoderConfig struct {
	MaxFeatures int `yaml:"max_features" validate:"gte=1"`
}

// RecommenderConfig controls retrieval.
type RecommenderConfig struct {
	TopK               int    `yaml:"top_k" validate:"gte=1"`
	DefaultDescription string `yaml:"default_description"`
}

// LoggingConfig selects the zap preset, level and sink.
type LoggingConfig struct {
	Env    string `yaml:"env" validate:"oneof=local dev prod"`
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Output string `yaml:"output,omitempty"`
}

// ServerConfig configures the web shell listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"gte=1,lte=65535"`
	// RateLimit is requests per minute per client IP. Unset selects
	// DefaultRateLimit; an explicit 0 disables limiting.
	RateLimit   *int     `yaml:"rate_limit,omitempty" validate:"omitempty,gte=0"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
	// SessionTTLMinutes is the idle lifetime of a web session.
	SessionTTLMinutes int `yaml:"session_ttl_minutes" validate:"gte=1"`
	MaxSessions       int `yaml:"max_sessions" validate:"gte=1"`
}

// DefaultRateLimit is the per-IP request budget per minute when unset.
const DefaultRateLimit = 120

// RequestsPerMinute resolves RateLimit; 0 means no limit.
func (c ServerConfig) RequestsPerMinute() int {
	if c.RateLimit == nil {
		return DefaultRateLimit
	}
	return *c.RateLimit
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	Encoder     EncoderConfig     `yaml:"encoder"`
	Recommender RecommenderConfig `yaml:"recommender"`
	Logging     LoggingConfig     `yaml:"logging"`
	Server      ServerConfig      `yaml:"server"`
}

// Addr returns host:port for the web shell.
func (c ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, validate(cfg)
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/foodrec/config.yaml.
// If neither exists, it writes defaults to ~/.config/foodrec/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, validate(cfg)
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "foodrec", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "food.csv"
	}
	if cfg.Catalog.DescriptionColumn == "" {
		cfg.Catalog.DescriptionColumn = "Description"
	}
	if cfg.Catalog.CategoryColumn == "" {
		cfg.Catalog.CategoryColumn = "Category"
	}
	if cfg.Catalog.IDColumn == "" {
		cfg.Catalog.IDColumn = "Nutrient Data Bank Number"
	}
	if cfg.Encoder.MaxFeatures == 0 {
		cfg.Encoder.MaxFeatures = 600
	}
	if cfg.Recommender.TopK == 0 {
		cfg.Recommender.TopK = 10
	}
	if cfg.Recommender.DefaultDescription == "" {
		cfg.Recommender.DefaultDescription = "healthy food"
	}
	if cfg.Logging.Env == "" {
		cfg.Logging.Env = "local"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8501
	}
	if cfg.Server.RateLimit == nil {
		limit := DefaultRateLimit
		cfg.Server.RateLimit = &limit
	}
	if cfg.Server.SessionTTLMinutes == 0 {
		cfg.Server.SessionTTLMinutes = 30
	}
	if cfg.Server.MaxSessions == 0 {
		cfg.Server.MaxSessions = 10000
	}
}

var validate = func() func(*AppConfig) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return func(cfg *AppConfig) error {
		if err := v.Struct(cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	}
}()

// applyEnvOverrides lets FOODREC_* variables (typically from .env) win over the file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("FOODREC_CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("FOODREC_ENV"); v != "" {
		cfg.Logging.Env = v
	}
	if v := os.Getenv("FOODREC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FOODREC_LOG_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
	if v := os.Getenv("FOODREC_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FOODREC_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
}
