package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/studynotes/internal/analysis"
	"github.com/dgallion1/studynotes/internal/api"
	"github.com/dgallion1/studynotes/internal/config"
	"github.com/dgallion1/studynotes/internal/logging"
	"github.com/dgallion1/studynotes/internal/pipeline"
	"github.com/dgallion1/studynotes/internal/session"
	"github.com/dgallion1/studynotes/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Stdout().Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logging.Stdout().Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log, closeLog := logging.New(os.Stdout, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := session.NewStore(cfg.SessionTTL)
	svc := analysis.New(analysis.Options{
		ContextChars:     cfg.DefaultContextChars,
		SummarySentences: cfg.DefaultSummarySentences,
		Keywords:         cfg.DefaultKeywords,
		CacheEntries:     cfg.CacheEntries,
		Latency:          stats.NewRegistry(stats.DefaultWindow),
	})

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, sessions, svc, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, sessions, svc, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.UploadWait + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting studynotes", "port", cfg.Port, "workers", cfg.WorkerCount, "auth", cfg.APIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
}
