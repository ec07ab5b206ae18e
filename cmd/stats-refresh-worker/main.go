package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	lcache "github.com/radieske/caderneta/internal/ledger-service/cache"
	sharedcache "github.com/radieske/caderneta/internal/shared/cache"
	"github.com/radieske/caderneta/internal/shared/config"
	"github.com/radieske/caderneta/internal/shared/db"
	skafka "github.com/radieske/caderneta/internal/shared/kafka"
	"github.com/radieske/caderneta/internal/shared/logger"
	"github.com/radieske/caderneta/internal/shared/metrics"
	"github.com/radieske/caderneta/internal/stats-refresh/consumer"
	"github.com/radieske/caderneta/internal/stats-refresh/repo"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Consumer Kafka (consumer group stats-refresh)
	reader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicLedgerChanged, "stats-refresh")
	defer reader.Close()

	// DLQ para eventos que falharam mesmo após retry
	var dlqWriter *skafka.Writer
	if cfg.TopicLedgerChangedDLQ != "" {
		dlqWriter = skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerChangedDLQ)
		defer dlqWriter.Close()
	}

	// métricas do worker
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "stats_refresh_messages_consumed_total", Help: "mensagens consumidas"})
	refreshed := prometheus.NewCounter(prometheus.CounterOpts{Name: "stats_refresh_summaries_total", Help: "resumos recalculados"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "stats_refresh_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, refreshed, errorsBy)

	proc := &consumer.Refresher{
		Log:    log,
		Reader: reader,
		Repo:   repo.NewReadRepo(pg),
		Cache:  lcache.New(rdb),
		TTL:    cfg.SummaryCacheTTL,
		DLQ:    dlqWriter,

		OnConsumed:  func() { consumed.Inc() },
		OnRefreshed: func() { refreshed.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Servidor de métricas e health check
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("stats-refresh-worker started")
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("refresher stopped with error", zap.Error(err))
	}
	log.Info("stats-refresh-worker stopped")
}
