package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/camunda"
	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/database"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/notify"
	"consultancy-workers/internal/common/observability"
	"consultancy-workers/internal/common/ratelimit"
	"consultancy-workers/internal/server"
	"consultancy-workers/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
	connectMaxDelay = 30 * time.Second
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, zapLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLog.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLog.Info("starting worker manager", zap.String("version", cfg.App.Version))

	log := logger.NewZapAdapter(zapLog)
	obs := observability.New(cfg.App.Name, prometheus.DefaultRegisterer, log)
	defer obs.Shutdown()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = camunda.RetryWithBackoff(ctx, "Zeebe connection", connectAttempts, connectDelay, connectMaxDelay, zapLog, func() error {
		var err error
		zeebe, err = camunda.Connect(ctx, cfg.Camunda)
		return err
	})
	if err != nil {
		return err
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- PostgreSQL ---
	pg, err := connectPostgres(ctx, cfg, zapLog)
	if err != nil {
		return err
	}
	defer pg.Close()

	// --- Elasticsearch ---
	var es *database.ElasticsearchClient
	err = camunda.RetryWithBackoff(ctx, "Elasticsearch connection", connectAttempts, connectDelay, connectMaxDelay, zapLog, func() error {
		var err error
		if es, err = database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
			return err
		}
		return es.Ping(ctx)
	})
	if err != nil {
		return err
	}
	if err := es.EnsureIndex(ctx, cfg.Search.CaseStudyIndex, database.CaseStudyMapping); err != nil {
		// search degrades to SEARCH_QUERY_FAILED until the index exists
		zapLog.Warn("case study index not ready", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected", zap.String("index", cfg.Search.CaseStudyIndex))

	// --- Redis ---
	var rdb *database.RedisClient
	err = camunda.RetryWithBackoff(ctx, "Redis connection", connectAttempts, connectDelay, connectMaxDelay, zapLog, func() error {
		var err error
		if rdb, err = database.NewRedis(cfg.Database.Redis); err != nil {
			return err
		}
		return rdb.Ping(ctx)
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	zapLog.Info("Redis connected")

	// --- Notifications ---
	var (
		sesSvc notify.SESService
		snsSvc notify.SNSService
	)
	if cfg.Notifications.SES.Enabled || cfg.Notifications.SNS.Enabled {
		sesClient, snsClient, err := notify.NewAWSClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return err
		}
		if cfg.Notifications.SES.Enabled {
			sesSvc = sesClient
		}
		if cfg.Notifications.SNS.Enabled {
			snsSvc = snsClient
		}
	}

	deps := &workers.Deps{
		Config:        cfg,
		DB:            pg.GetDB(),
		Redis:         rdb.GetClient(),
		Searcher:      casestudy.NewSearcher(es.Client, cfg.Search.CaseStudyIndex),
		Limiter:       ratelimit.FromConfig(rdb.GetClient(), cfg.RateLimit),
		Notifier:      notify.NewNotifier(cfg.Notifications, sesSvc, snsSvc),
		Observability: obs,
		Logger:        log,
	}

	reg := camunda.NewRegistry(zeebe, cfg, zapLog)
	started := workers.RegisterAll(reg, deps)
	zapLog.Info("workers registered", zap.Int("count", started), zap.Strings("taskTypes", reg.TaskTypes()))

	ops := server.New(zapLog, server.Config{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	}, server.Dependencies{
		Checks: map[string]server.Check{
			"postgres":      pg.Ping,
			"redis":         rdb.Ping,
			"elasticsearch": es.Ping,
			"zeebe":         zeebe.HealthCheck,
		},
		DB:       pg.GetDB(),
		Gatherer: prometheus.DefaultGatherer,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ops.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("shutdown signal received, stopping workers")
		reg.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("worker manager stopped with error", zap.Error(err))
		return err
	}
	zapLog.Info("worker manager stopped")
	return nil
}

func connectPostgres(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (*database.PostgresClient, error) {
	var pg *database.PostgresClient
	err := camunda.RetryWithBackoff(ctx, "PostgreSQL connection", connectAttempts+5, connectDelay, connectMaxDelay, zapLog, func() error {
		var err error
		if pg, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zapLog.Info("PostgreSQL connected", zap.String("database", cfg.Database.Postgres.Database))
	return pg, nil
}
