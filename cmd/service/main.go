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

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"openmusic-service/internal/access"
	"openmusic-service/internal/audit"
	"openmusic-service/internal/cache"
	"openmusic-service/internal/catalog"
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
	logger, err := cfg.Log.NewLogger("openmusic-service")
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
	if err := store.AutoMigrate(ctx, pool); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

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

	m := metrics.New(prometheus.DefaultRegisterer)
	pg := store.NewPostgres(pool)
	resolver := access.NewResolver(pg)

	svc := catalog.NewService(catalog.Deps{
		Store:    pg,
		Auth:     resolver,
		Audit:    audit.NewLog(pool),
		Cache:    cache.NewRedisBackend(rdb, logger.Named("redis")),
		CacheTTL: cfg.Cache.TTL,
		Logger:   logger.Named("catalog"),
		Metrics:  m,
	})
	dispatcher := export.NewDispatcher(resolver, channel, logger.Named("export"), m)

	api := httpapi.NewServer(svc, dispatcher, logger.Named("http"), promhttp.Handler())
	if cfg.Auth.AccessTokenKey != "" {
		api = api.WithAccessTokenKey([]byte(cfg.Auth.AccessTokenKey))
	} else {
		logger.Warn("no access token key configured, trusting the X-User-Id header")
	}
	router := api.Router(
		middleware.RequestID,
		middleware.RealIP,
		httpapi.AccessLog(logger.Named("access")),
		middleware.Recoverer,
		middleware.Timeout(cfg.HTTP.RequestTimeout),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", srv.Addr), zap.String("channel", cfg.Channel.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	logger.Info("server exited")
}
