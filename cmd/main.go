package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"committed/internal/adapters/cli"
	"committed/internal/adapters/demo"
	"committed/internal/adapters/gitlab"
	"committed/internal/adapters/repository"
	service "committed/internal/app"
	"committed/internal/config"
	"committed/pkg/logger"
	"committed/pkg/metrics"
)

// HTTP server timeout constants for the watch-mode metrics endpoint.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	syncOnce := flag.Bool("sync", false, "run one sync and exit")
	watch := flag.Bool("watch", false, "sync on an interval and serve /metrics")
	flag.Parse()

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env/env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	source, offline := buildSource(ctx, cfg, loggerInstance)
	if offline && (*syncOnce || *watch) {
		os.Stderr.WriteString("sync modes need GitLab credentials or demo mode\n")
		return
	}

	store, err := repository.Open(cfg.SavePath)
	if err != nil {
		os.Stderr.WriteString("failed to open save db: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			loggerInstance.Error(ctx, "closing save db failed", logger.Error(err))
		}
	}()

	svc := service.New(
		service.WithStore(store),
		service.WithSource(source),
		service.WithCharacterName(cfg.CharacterName),
		service.WithLogger(loggerInstance),
	)
	svc.LoadState(ctx)

	switch {
	case *syncOnce:
		runSyncOnce(ctx, svc, loggerInstance)
	case *watch:
		runWatch(ctx, cfg, svc, loggerInstance)
	default:
		menu := cli.New(svc, cli.WithLogger(loggerInstance))
		if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			loggerInstance.Error(ctx, "menu loop failed", logger.Error(err))
		}
	}
}

// buildSource picks the activity source: demo, GitLab, or none (offline).
func buildSource(ctx context.Context, cfg *config.Config, log logger.Logger) (service.ActivitySource, bool) {
	if cfg.Demo {
		log.Info(ctx, "running in demo mode")
		return demo.New(), false
	}

	if cfg.GitLabToken == "" || cfg.GitLabUsername == "" {
		log.Warn(ctx, "gitlab credentials not set; sync disabled")
		return nil, true
	}

	client, err := gitlab.New(cfg.GitLabURL, cfg.GitLabToken, cfg.GitLabUsername)
	if err != nil {
		// Misconfiguration, not a transient failure: surface it and fall
		// back to offline play.
		log.Error(ctx, "gitlab client rejected configuration", logger.Error(err))
		return nil, true
	}
	return client, false
}

func runSyncOnce(ctx context.Context, svc *service.Service, log logger.Logger) {
	if _, err := svc.Sync(ctx); err != nil {
		log.Error(ctx, "sync failed", logger.Error(err))
		return
	}
	_ = svc.SaveState(ctx)
}

// runWatch syncs on an interval and serves Prometheus metrics until the
// process is signalled.
func runWatch(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
		}
	}()

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	runSyncOnce(ctx, svc, log)
	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, "shutting down...")
			_ = svc.SaveState(context.Background())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
			}
			return
		case <-ticker.C:
			runSyncOnce(ctx, svc, log)
		}
	}
}
