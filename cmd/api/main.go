package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/config"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/handler"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/llmclient"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/logger"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/plan"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/pricing"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/repository/archive"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/repository/planstore"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	gen, err := llmclient.NewGeminiClient(ctx, llmclient.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		log.Fatal("init generation client", zap.Error(err))
	}
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; every generation will use the fallback layout")
	}

	var store *planstore.Store
	if cfg.Store.PostgresDSN != "" {
		store, err = planstore.NewPostgres(cfg.Store.PostgresDSN)
		if err != nil {
			log.Warn("postgres plan store unavailable; falling back to the file backend",
				zap.Error(err))
			store = planstore.New(cfg.Store.FilePath)
		}
	} else {
		store = planstore.New(cfg.Store.FilePath)
	}
	defer func() { _ = store.Close() }()

	var arch *archive.Store
	if cfg.Archive.Enabled {
		arch, err = archive.New(archive.Config{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			log.Warn("plan archive disabled", zap.Error(err))
			arch = nil
		}
	}

	broker := plan.NewBroker()
	pipeline := plan.NewPipeline(gen, log, broker)
	h := handler.New(store, pipeline, arch, pricing.NewService(), broker, log)

	srv := server.New(cfg.Port, server.NewMux(h), log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	log.Info("api server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}
}
