package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/twmb/franz-go/pkg/kgo"

	accountservice "bankapi/internal/account/service"
	accountstore "bankapi/internal/account/store"
	"bankapi/internal/admin"
	"bankapi/internal/decision"
	"bankapi/internal/decision/amount"
	"bankapi/internal/decision/handler"
	decisionmetrics "bankapi/internal/decision/metrics"
	"bankapi/internal/platform/config"
	"bankapi/internal/platform/httpserver"
	"bankapi/internal/platform/kafka"
	"bankapi/internal/platform/logger"
	"bankapi/internal/platform/metrics"
	"bankapi/internal/platform/postgres"
	"bankapi/internal/platform/redis"
	txservice "bankapi/internal/transaction/service"
	txstore "bankapi/internal/transaction/store"
	httptransport "bankapi/internal/transport/http"
	audit "bankapi/pkg/platform/audit"
	"bankapi/pkg/platform/audit/publisher"
	"bankapi/pkg/platform/audit/store/fanout"
	kafkaaudit "bankapi/pkg/platform/audit/store/kafka"
	"bankapi/pkg/platform/audit/store/memory"
	auditpostgres "bankapi/pkg/platform/audit/store/postgres"
	"bankapi/pkg/platform/circuit"
	txctx "bankapi/pkg/platform/tx"
)

const auditTopicPartitions = 3

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type infra struct {
	db    *sql.DB
	redis *redis.Client
	kafka *kgo.Client
}

func (i *infra) close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	deps, err := connect(startupCtx, cfg, log)
	defer deps.close()
	if err != nil {
		return err
	}

	var (
		accounts     accountstore.Store = accountstore.NewInMemory()
		transactions txstore.Store      = txstore.NewInMemory()
		auditStore   audit.Store        = memory.NewInMemoryStore(memory.WithCapacity(cfg.Kafka.MemoryCapacity))
		runner       txctx.Runner       = txctx.NopRunner{}
	)
	if deps.db != nil {
		if err := postgres.Migrate(startupCtx, deps.db, accountstore.Schema, txstore.Schema, auditpostgres.Schema); err != nil {
			return err
		}
		accounts = accountstore.NewPostgres(deps.db)
		transactions = txstore.NewPostgres(deps.db)
		auditStore = auditpostgres.New(deps.db)
		runner = txctx.NewSQLRunner(deps.db)
		log.Info("using postgres stores")
	}
	if deps.redis != nil {
		accounts = accountstore.NewCached(accounts, deps.redis.Client,
			accountstore.WithCacheTTL(cfg.Redis.CacheTTL),
			accountstore.WithCacheLogger(log),
		)
		log.Info("account lookup cache enabled", "ttl", cfg.Redis.CacheTTL)
	}
	if deps.kafka != nil {
		if err := kafka.EnsureTopic(startupCtx, deps.kafka, cfg.Kafka.AuditTopic, auditTopicPartitions); err != nil {
			return err
		}
		mirror := fanout.Guard(kafkaaudit.New(deps.kafka, cfg.Kafka.AuditTopic), circuit.New("kafka-audit"),
			fanout.WithMirrorTimeout(cfg.Kafka.MirrorTimeout),
			fanout.WithRetryInterval(cfg.Kafka.RetryInterval),
			fanout.WithGuardLogger(log),
		)
		auditStore = fanout.New(auditStore, mirror)
		log.Info("outcome audit mirrored to kafka", "topic", cfg.Kafka.AuditTopic)
	}

	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.Kafka.AuditBuffer),
		publisher.WithDrainTimeout(cfg.Kafka.DrainTimeout),
		publisher.WithLogger(log),
	)
	defer auditor.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	accountSvc, err := accountservice.New(accounts, accountservice.WithLogger(log))
	if err != nil {
		return err
	}
	txSvc, err := txservice.New(accounts, transactions,
		txservice.WithTxRunner(runner),
		txservice.WithLogger(log),
	)
	if err != nil {
		return err
	}
	decisionSvc, err := decision.New(accountSvc, txSvc,
		decision.WithAmountBounds(amount.Bounds{
			Min:   cfg.Decision.AmountMin,
			Max:   cfg.Decision.AmountMax,
			Scale: 2,
		}),
		decision.WithMinNameLength(cfg.Decision.MinNameLength),
		decision.WithLogger(log),
		decision.WithMetrics(decisionmetrics.NewWith(reg)),
		decision.WithAuditor(auditor),
	)
	if err != nil {
		return err
	}

	routes := httptransport.Deps{
		Banking:  handler.New(decisionSvc, log),
		Logger:   log,
		Metrics:  metrics.NewWith(reg),
		Gatherer: reg,
		Health:   deps.healthChecks(),
	}
	if lister, ok := auditStore.(audit.Lister); ok {
		routes.Admin = admin.New(lister, log)
	}
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(routes))

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting bankapi", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// connect opens whichever backing services are configured. Partially opened
// connections are returned alongside an error so the caller can close them.
func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	deps := &infra{}
	var err error

	if deps.db, err = postgres.Open(ctx, cfg.DatabaseURL); err != nil {
		return deps, err
	}
	if deps.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		return deps, err
	}
	if deps.kafka, err = kafka.New(ctx, cfg.Kafka); err != nil {
		return deps, err
	}
	log.Info("backing services connected",
		"postgres", deps.db != nil,
		"redis", deps.redis != nil,
		"kafka", deps.kafka != nil,
	)
	return deps, nil
}

func (i *infra) healthChecks() map[string]httptransport.HealthCheck {
	checks := make(map[string]httptransport.HealthCheck)
	if i.db != nil {
		checks["postgres"] = i.db.PingContext
	}
	if i.redis != nil {
		checks["redis"] = i.redis.Health
	}
	if i.kafka != nil {
		checks["kafka"] = i.kafka.Ping
	}
	return checks
}
