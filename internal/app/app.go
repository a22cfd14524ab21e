// Package app assembles the recommender from configuration for the shells.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"foodrec/internal/catalog"
	"foodrec/internal/config"
	"foodrec/internal/service"
)

// LoadConfig loads path, or the default locations when path is empty.
// catalogPath, when set, replaces the configured catalog file.
func LoadConfig(path, catalogPath string) (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if path == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	return cfg, nil
}

// Schema converts the catalog section of cfg into a loader schema.
func Schema(cfg config.CatalogConfig) catalog.Schema {
	return catalog.Schema{
		DescriptionColumn: cfg.DescriptionColumn,
		CategoryColumn:    cfg.CategoryColumn,
		IDColumn:          cfg.IDColumn,
		NutrientColumns:   cfg.NutrientColumns,
	}
}

// NewRecommender loads the catalog named by cfg and fits the pipeline.
func NewRecommender(cfg *config.AppConfig, log *zap.Logger) (*service.Recommender, error) {
	c, err := catalog.Load(cfg.Catalog.Path, catalog.LoadOptions{
		Schema: Schema(cfg.Catalog),
		Sheet:  cfg.Catalog.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Catalog.Path, err)
	}
	log.Info("catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("records", c.Len()))
	return service.NewRecommender(c, service.Options{
		TopK:               cfg.Recommender.TopK,
		MaxFeatures:        cfg.Encoder.MaxFeatures,
		DefaultDescription: cfg.Recommender.DefaultDescription,
		Logger:             log,
	})
}
