package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	lcache "github.com/radieske/caderneta/internal/ledger-service/cache"
	lhttp "github.com/radieske/caderneta/internal/ledger-service/http"
	kpub "github.com/radieske/caderneta/internal/ledger-service/producer"
	"github.com/radieske/caderneta/internal/ledger-service/repo"
	"github.com/radieske/caderneta/internal/ledger-service/slip"
	sharedcache "github.com/radieske/caderneta/internal/shared/cache"
	"github.com/radieske/caderneta/internal/shared/config"
	"github.com/radieske/caderneta/internal/shared/db"
	skafka "github.com/radieske/caderneta/internal/shared/kafka"
	"github.com/radieske/caderneta/internal/shared/logger"
	"github.com/radieske/caderneta/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writer (topic ledger_changed)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerChanged)
	defer writer.Close()

	// deps
	repository := repo.NewPostgres(pg)
	summaryCache := lcache.New(rdb)
	publ := kpub.NewKafkaPublisher(writer, cfg.TopicLedgerChanged)
	slipReader := slip.New(cfg.SlipReaderURL)

	// HTTP público
	api := lhttp.NewServer(log, repository, summaryCache, publ, slipReader, cfg.SummaryCacheTTL)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	log.Info("ledger-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
