package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"openmusic-service/internal/config"
	"openmusic-service/internal/export"
	"openmusic-service/internal/httpapi"
	"openmusic-service/internal/metrics"
	"openmusic-service/internal/store"
)

var configFile = flag.String("config", "", "path to a YAML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := cfg.Log.NewLogger("openmusic-export-worker")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("invalid redis url", zap.Error(err))
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	channel, closeChannel, err := export.OpenChannel(cfg.Channel.Driver, rdb, cfg.Channel.KafkaBrokers, cfg.Channel.KafkaGroupID, logger.Named("channel"))
	if err != nil {
		logger.Fatal("export channel", zap.Error(err))
	}
	defer func() { _ = closeChannel() }()

	var mailer export.Mailer
	smtpMailer, err := export.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		logger.Warn("smtp not configured, export mails will only be logged", zap.Error(err))
		mailer = export.LogMailer{Logger: logger.Named("mail")}
	} else {
		mailer = smtpMailer
	}

	ops := &http.Server{
		Addr:    ":" + cfg.Worker.MetricsPort,
		Handler: httpapi.OpsRouter("openmusic-export-worker", promhttp.Handler()),
	}
	go func() {
		logger.Info("metrics server starting", zap.String("addr", ops.Addr))
		if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	worker := export.NewWorker(store.NewPostgres(pool), mailer, logger.Named("worker"), metrics.New(prometheus.DefaultRegisterer))
	if err := worker.Run(ctx, channel); err != nil {
		logger.Error("export worker stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := ops.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", zap.Error(err))
	}
	logger.Info("export worker exited")
}
