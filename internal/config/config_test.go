package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog.Path != "food.csv" || cfg.Recommender.TopK != 10 || cfg.Encoder.MaxFeatures != 600 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Recommender.DefaultDescription != "healthy food" {
		t.Errorf("DefaultDescription=%q", cfg.Recommender.DefaultDescription)
	}
	if cfg.Server.Addr() != "127.0.0.1:8501" {
		t.Errorf("Addr=%q", cfg.Server.Addr())
	}
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
catalog:
  path: data/food.xlsx
  sheet: Foods
  nutrient_columns: ["Data.Protein", "Data.Fiber"]
recommender:
  top_k: 5
logging:
  env: prod
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog.Path != "data/food.xlsx" || cfg.Catalog.Sheet != "Foods" {
		t.Errorf("catalog=%+v", cfg.Catalog)
	}
	if len(cfg.Catalog.NutrientColumns) != 2 {
		t.Errorf("nutrient columns=%v", cfg.Catalog.NutrientColumns)
	}
	if cfg.Recommender.TopK != 5 || cfg.Logging.Env != "prod" || cfg.Logging.Level != "debug" {
		t.Errorf("cfg=%+v", cfg)
	}
	if cfg.Catalog.IDColumn != "Nutrient Data Bank Number" || cfg.Encoder.MaxFeatures != 600 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOODREC_CATALOG", "/tmp/other.csv")
	t.Setenv("FOODREC_LOG_LEVEL", "warn")
	t.Setenv("FOODREC_PORT", "9000")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog.Path != "/tmp/other.csv" || cfg.Logging.Level != "warn" || cfg.Server.Port != 9000 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("catalog: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Recommender.TopK = 3
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Recommender.TopK != 3 {
		t.Errorf("TopK=%d", got.Recommender.TopK)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad env", "logging:\n  env: staging\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"negative top k", "recommender:\n  top_k: -1\n"},
		{"port out of range", "server:\n  port: 70000\n"},
		{"duplicate nutrient", "catalog:\n  nutrient_columns: [\"Data.Protein\", \"Data.Protein\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			var verrs validator.ValidationErrors
			if _, err := Load(path); !errors.As(err, &verrs) {
				t.Errorf("err=%v, want validation error", err)
			}
		})
	}
}

func TestLoad_RateLimitZeroDisables(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"unset", "server:\n  port: 8080\n", DefaultRateLimit},
		{"explicit zero", "server:\n  rate_limit: 0\n", 0},
		{"explicit value", "server:\n  rate_limit: 30\n", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := cfg.Server.RequestsPerMinute(); got != tt.want {
				t.Errorf("RequestsPerMinute=%d, want %d", got, tt.want)
			}
		})
	}
}
