package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"foodrec/internal/app"
	"foodrec/internal/logger"
	"foodrec/internal/metrics"
	"foodrec/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, catalogPath, addr string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&catalogPath, "catalog", "", "Path to the food catalog (.csv or .xlsx); overrides the config")
	flag.StringVar(&addr, "addr", "", "Listen address; overrides server.host and server.port")
	flag.Parse()

	cfg, err := app.LoadConfig(cfgPath, catalogPath)
	if err != nil {
		log.Fatal(err)
	}
	var outputs []string
	if cfg.Logging.Output != "" {
		outputs = append(outputs, cfg.Logging.Output)
	}
	lg, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level, outputs...)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	metrics.Register()

	rec, err := app.NewRecommender(cfg, lg)
	if err != nil {
		lg.Fatal("startup failed", zap.Error(err))
	}
	if addr == "" {
		addr = cfg.Server.Addr()
	}

	srv := server.NewServer(rec, server.Options{
		Logger:      lg,
		RateLimit:   cfg.Server.RequestsPerMinute(),
		CORSOrigins: cfg.Server.CORSOrigins,
		SessionTTL:  time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute,
		MaxSessions: cfg.Server.MaxSessions,
	})
	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		lg.Error("Server forced to shutdown", zap.Error(err))
	}
}
