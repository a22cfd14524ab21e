package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"foodrec/internal/config"
	"foodrec/internal/domain"
)

const csvData = `Category,Description,Nutrient Data Bank Number,Data.Protein,Data.Sugar Total,Data.Fat.Total Lipid,Data.Major Minerals.Sodium,Data.Vitamins.Vitamin C,Data.Vitamins.Vitamin A - RAE
Milk,"MILK,WHOLE",1001,3.2,5.1,3.3,43,0,46
Milk,"MILK,SKIM",1002,3.4,5,0.1,42,0,61
Cheese,"CHEESE,CHEDDAR",1003,24.9,0.5,33.1,621,0,265
Fish,"TUNA,CANNED",1004,29,0,1,247,0,17
`

func TestNewRecommender_FromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "food.csv")
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "catalog:\n  nutrient_columns: [\"Data.Protein\", \"Data.Sugar Total\", \"Data.Fat.Total Lipid\", \"Data.Major Minerals.Sodium\", \"Data.Vitamins.Vitamin C\", \"Data.Vitamins.Vitamin A - RAE\"]\nrecommender:\n  top_k: 3\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(cfgPath, path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := NewRecommender(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Catalog().Len() != 4 || rec.TopK() != 3 {
		t.Fatalf("records=%d topK=%d", rec.Catalog().Len(), rec.TopK())
	}
	got, err := rec.Recommend(domain.Request{Goal: domain.GoalHighProtein, Diet: domain.DietNoPreference})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("results=%d", len(got))
	}
}

func TestNewRecommender_MissingCatalog(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "absent.csv")
	if _, err := NewRecommender(cfg, zap.NewNop()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err=%v, want not-exist", err)
	}
}

func TestNewRecommender_MissingOverrideColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "food.csv")
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "catalog:\n  nutrient_columns: [\"Data.Protein\", \"Data.Sugar Total\"]\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(cfgPath, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRecommender(cfg, zap.NewNop()); !errors.Is(err, domain.ErrMalformedCatalog) {
		t.Errorf("err=%v, want malformed catalog", err)
	}
}
