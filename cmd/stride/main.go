package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "stride/internal/adapter/http"
	"stride/internal/adapter/kafka"
	"stride/internal/adapter/memory"
	"stride/internal/adapter/postgres"
	"stride/internal/adapter/sqlite"
	"stride/internal/app"
	"stride/internal/config"
	"stride/internal/domain"
	"stride/internal/observability"

	"go.uber.org/zap"
)

// store is what every storage driver provides.
type store interface {
	domain.AccountRepository
	domain.ActivityRepository
	domain.LikeRepository
}

func openStore(cfg *config.Config) (store, func(context.Context) error, func() error, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, db.Ping, db.Close, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, db.Ping, db.Close, nil
	default:
		return memory.New(), nil, func() error { return nil }, nil
	}
}

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, ping, closeDB, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() { _ = closeDB() }()
	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	var events domain.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		pub := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = pub.Close() }()
		events = pub
		log.Info("publishing activity events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sso *adapthttp.OIDCConfig
	if cfg.OIDC.Enabled() {
		sso, err = adapthttp.NewOIDCConfig(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			return err
		}
		log.Info("sso enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	svc := adapthttp.Services{
		Accounts:   app.NewAccountService(db, log),
		Activities: app.NewActivityService(db, db, events, log),
		Likes:      app.NewLikeService(db, db, db, events, log),
		Timeline:   app.NewTimelineService(db),
	}
	h := adapthttp.New(svc, adapthttp.Options{
		WebDir:     cfg.WebDir,
		CORSOrigin: cfg.CORSOrigin,
		SSO:        sso,
		Ping:       ping,
		Log:        log,
	}).Handler()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
