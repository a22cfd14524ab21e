package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"foodrec/internal/app"
	"foodrec/internal/logger"
	"foodrec/internal/summarizer"
	"foodrec/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, catalogPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/foodrec/config.yaml if not provided)")
	flag.StringVar(&catalogPath, "catalog", "", "Path to the food catalog (.csv or .xlsx); overrides the config")
	flag.Parse()

	cfg, err := app.LoadConfig(cfgPath, catalogPath)
	if err != nil {
		log.Fatal(err)
	}

	// The terminal belongs to the TUI, so logs only go to a configured file.
	lg := zap.NewNop()
	if cfg.Logging.Output != "" {
		if lg, err = logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level, cfg.Logging.Output); err != nil {
			log.Fatalf("failed to init logger: %v", err)
		}
	}
	defer func() { _ = lg.Sync() }()

	rec, err := app.NewRecommender(cfg, lg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	summary := summarizer.NewFrequencySummarizer().Summarize(rec.Catalog(), 8)

	m := tui.New(rec.NewSession(), rec.Categories(), summary)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		lg.Error("tui exited", zap.Error(err))
		log.Fatal(err)
	}
}
