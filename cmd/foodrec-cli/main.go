package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"foodrec/internal/app"
	"foodrec/internal/logger"
	"foodrec/internal/prompt"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, catalogPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&catalogPath, "catalog", "", "Path to the food catalog (.csv or .xlsx); overrides the config")
	flag.Parse()

	cfg, err := app.LoadConfig(cfgPath, catalogPath)
	if err != nil {
		log.Fatal(err)
	}

	// Stdout carries the dialogue; logs default to stderr.
	out := cfg.Logging.Output
	if out == "" {
		out = "stderr"
	}
	lg, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level, out)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	rec, err := app.NewRecommender(cfg, lg)
	if err != nil {
		lg.Fatal("startup failed", zap.Error(err))
	}
	if err := prompt.New(rec.NewSession(), rec.Categories(), os.Stdin, os.Stdout).Run(); err != nil {
		lg.Fatal("prompt failed", zap.Error(err))
	}
}
