package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"mesa-boost/internal/adapter/events"
	"mesa-boost/internal/adapter/lease"
	"mesa-boost/internal/adapter/memory"
	"mesa-boost/internal/adapter/metrics"
	"mesa-boost/internal/adapter/postgres"
	"mesa-boost/internal/adapter/scheduler"
	"mesa-boost/internal/adapter/usecase"
	"mesa-boost/internal/config"
	"mesa-boost/internal/core/eligibility"
	"mesa-boost/internal/core/port"
	"mesa-boost/internal/db"
)

// app holds the wired adapters and services for one process.
type app struct {
	pool    *pgxpool.Pool
	repo    port.BoostRepository
	metrics *metrics.Prometheus
	boosts  *usecase.BoostUseCase
	ranking *usecase.RankingUseCase
	expirer *scheduler.Expirer

	closers []func() error
}

// newApp builds every adapter the configuration asks for. The caller must
// call close.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (a *app, err error) {
	a = &app{metrics: metrics.NewPrometheus()}
	defer func() {
		if err != nil {
			a.close(logger)
		}
	}()

	var (
		profiles port.ProfileReader
		catalog  port.Catalog
		ledger   port.Ledger
	)
	switch cfg.Boost.StoreDriver {
	case "memory":
		store, wallets := memoryStore()
		a.repo, profiles, catalog, ledger = store, store, store, wallets
		logger.Warn("using in-memory store; state is lost on exit")
	default:
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return a, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied successfully")
		}
		if a.pool, err = db.NewPostgresPool(ctx, cfg.Psql); err != nil {
			return a, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { a.pool.Close(); return nil })
		a.repo = postgres.NewBoostRepository(a.pool)
		profiles = postgres.NewProfileRepository(a.pool)
		catalog = postgres.NewCatalogRepository(a.pool)
		ledger = postgres.NewLedger(a.pool)
	}

	var publisher port.EventPublisher = events.NewLog(logger)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := events.Dial(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			return a, err
		}
		a.closers = append(a.closers, producer.Close)
		publisher = producer
	}

	var locker port.Locker = lease.NewLocal()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err = client.Ping(pctx).Err(); err != nil {
			return a, fmt.Errorf("connect redis: %w", err)
		}
		locker = lease.NewRedis(client)
	}

	calc, err := cfg.Pricing.Calculator()
	if err != nil {
		return a, fmt.Errorf("pricing config: %w", err)
	}

	a.boosts = usecase.NewBoostUseCase(usecase.Deps{
		Repo:     a.repo,
		Profiles: profiles,
		Catalog:  catalog,
		Ledger:   ledger,
		Events:   publisher,
		Metrics:  a.metrics,
		Pricing:  calc,
		Logger:   logger,
	}, usecase.Options{
		Rules: eligibility.Rules{
			MinCompleteness: cfg.Boost.MinCompleteness,
			DailyBoostLimit: cfg.Boost.DailyBoostLimit,
		},
		PurchaseTimeout:     cfg.Boost.PurchaseTimeout,
		CompensationTimeout: cfg.Boost.CompensationTimeout,
	})

	a.ranking, err = usecase.NewRankingUseCase(a.repo, profiles, a.metrics, logger, usecase.RankingOptions{
		CacheSize:    cfg.Ranking.CacheSize,
		CacheTTL:     cfg.Ranking.CacheTTL,
		DefaultLimit: cfg.Ranking.DefaultLimit,
	})
	if err != nil {
		return a, fmt.Errorf("ranking: %w", err)
	}

	a.expirer = scheduler.NewExpirer(a.repo, locker, publisher, a.metrics, logger, scheduler.Config{
		Interval:  cfg.Scheduler.Interval,
		BatchSize: cfg.Scheduler.BatchSize,
		LeaseTTL:  cfg.Scheduler.LeaseTTL,
	})
	return a, nil
}

// ready reports whether the store is reachable.
func (a *app) ready(ctx context.Context) error {
	if a.pool == nil {
		return nil
	}
	return a.pool.Ping(ctx)
}

func (a *app) close(logger *slog.Logger) {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}

// memoryStore returns in-memory adapters preloaded with the demo dataset.
func memoryStore() (*memory.Store, *memory.Ledger) {
	store, wallets := memory.NewStore(), memory.NewLedger()
	demo := db.Demo(time.Now().UnixNano())
	for _, p := range demo.Packages {
		store.PutPackage(p)
	}
	for _, p := range demo.Profiles {
		store.PutProfile(p)
		wallets.Fund(p.ID, demo.Balances[p.ID])
	}
	return store, wallets
}
