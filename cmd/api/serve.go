package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/ppob-wallet/internal/api"
	"github.com/baharkarakas/ppob-wallet/internal/auth"
	"github.com/baharkarakas/ppob-wallet/internal/cache"
	"github.com/baharkarakas/ppob-wallet/internal/config"
	"github.com/baharkarakas/ppob-wallet/internal/db"
	"github.com/baharkarakas/ppob-wallet/internal/events"
	"github.com/baharkarakas/ppob-wallet/internal/logger"
	"github.com/baharkarakas/ppob-wallet/internal/metrics"
	repo "github.com/baharkarakas/ppob-wallet/internal/repository"
	"github.com/baharkarakas/ppob-wallet/internal/repository/memory"
	"github.com/baharkarakas/ppob-wallet/internal/repository/postgres"
	"github.com/baharkarakas/ppob-wallet/internal/services"
	"github.com/baharkarakas/ppob-wallet/internal/storage"
	"github.com/baharkarakas/ppob-wallet/internal/worker"
)

const workerQueueSize = 1024

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	cipher, err := auth.NewPayloadCipher(cfg.EncryptionKey)
	if err != nil {
		return err
	}
	codec := auth.NewTokenCodec(cfg.JWTSecret, cipher, cfg.TokenTTL)

	images, err := openImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	svcCache, closeCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	pub, err := openPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = pub.Close() }()

	metrics.Init()
	wp := worker.NewPool(cfg.Workers, workerQueueSize, metrics.WorkerQueueDepth, log)
	// drained before the publisher closes
	defer wp.Stop()

	r := api.NewRouter(api.RouterDeps{
		Log:            log,
		Codec:          codec,
		RateRPS:        cfg.RateRPS,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadDir:      localUploadDir(cfg),
		UserSvc:        services.NewUserService(repos.Users, codec, images, cfg.MaxUploadBytes),
		CatalogSvc:     services.NewCatalogService(repos.Catalog, svcCache, log),
		BalanceSvc:     services.NewBalanceService(repos.Users),
		TxnSvc:         services.NewTransactionService(repos.Ledger, pub, wp, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "store", cfg.StoreDriver, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.Repositories, func(), error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using in-memory store; data is lost on exit")
		return memory.New().Repositories(), func() {}, nil
	}

	if cfg.AutoMigrate {
		m, err := db.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			return repo.Repositories{}, nil, err
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			return repo.Repositories{}, nil, err
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return repo.Repositories{}, nil, fmt.Errorf("db connect: %w", err)
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}

func openImageStore(ctx context.Context, cfg config.Config) (storage.ImageStore, error) {
	if cfg.Storage.Backend == "minio" {
		m, err := storage.NewMinio(cfg.Storage)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket: %w", err)
		}
		return m, nil
	}
	return storage.NewLocal(cfg.UploadDir, cfg.APIURL)
}

func localUploadDir(cfg config.Config) string {
	if cfg.Storage.Backend == "local" {
		return cfg.UploadDir
	}
	return ""
}

func openCache(ctx context.Context, cfg config.Config, log *slog.Logger) (cache.ServiceCache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.Noop{}, func() {}, nil
	}
	rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CatalogCacheTTL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("catalog cache enabled", "ttl", cfg.CatalogCacheTTL)
	return rc, func() { _ = rc.Close() }, nil
}

func openPublisher(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.Noop{}, nil
	}
	p, err := events.NewAMQP(cfg.AMQPURL, cfg.EventsQueue)
	if err != nil {
		return nil, fmt.Errorf("amqp: %w", err)
	}
	log.Info("settlement events enabled", "queue", cfg.EventsQueue)
	return p, nil
}
