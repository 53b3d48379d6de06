package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"release-gateway/internal/audit"
	"release-gateway/internal/catalog"
	cataloghandler "release-gateway/internal/catalog/handler"
	"release-gateway/internal/identity"
	identityhandler "release-gateway/internal/identity/handler"
	"release-gateway/internal/issuer"
	issuerhandler "release-gateway/internal/issuer/handler"
	"release-gateway/internal/platform/config"
	"release-gateway/internal/platform/httpserver"
	"release-gateway/internal/platform/logger"
	"release-gateway/internal/platform/metrics"
	platformredis "release-gateway/internal/platform/redis"
	"release-gateway/internal/recordstore"
	httptransport "release-gateway/internal/transport/http"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	store, cleanup, err := newStore(ctx, cfg, log, group)
	if err != nil {
		return fmt.Errorf("record store: %w", err)
	}
	defer cleanup()

	inbox := make(chan audit.Event, 256)
	publisher := audit.NewPublisher(inbox, log)
	sink, sinkCleanup, err := newSink(cfg, log)
	if err != nil {
		return fmt.Errorf("audit sink: %w", err)
	}
	defer sinkCleanup()
	worker := audit.NewWorker(sink, inbox, log)
	group.Go(func() error { return worker.Run(ctx) })

	identitySvc := identity.New(store, log, m, publisher)
	catalogSvc := catalog.New(store, log, m)
	issuerSvc := issuer.New(store, identitySvc, catalogSvc, log, m, publisher)

	router := httptransport.NewRouter(log, m,
		identityhandler.New(identitySvc, log, cfg.DemoMode),
		cataloghandler.New(catalogSvc, log),
		issuerhandler.New(issuerSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	group.Go(func() error {
		log.Info("starting release-gateway", "addr", cfg.Addr, "backend", cfg.StoreBackend, "demo", cfg.DemoMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newStore builds the configured record store backend and schedules its
// change listener on the group when the backend has one.
func newStore(ctx context.Context, cfg config.Server, log *slog.Logger, group *errgroup.Group) (recordstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("redis backend selected but REDIS_URL is empty")
		}
		store := recordstore.NewRedisStore(client.Client, log)
		group.Go(func() error { return store.Listen(ctx) })
		return store, func() { _ = client.Close() }, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := recordstore.NewPostgresStore(db, cfg.PostgresDSN, log)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		group.Go(func() error { return store.Listen(ctx) })
		return store, func() { _ = db.Close() }, nil

	default:
		return recordstore.NewInMemoryStore(), func() {}, nil
	}
}

// newSink picks the audit destination: Kafka when brokers are configured,
// otherwise the in-process store.
func newSink(cfg config.Server, log *slog.Logger) (audit.Sink, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("audit events kept in memory, no Kafka brokers configured")
		return audit.NewInMemoryStore(), func() {}, nil
	}
	sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	return sink, func() { sink.Close() }, nil
}
