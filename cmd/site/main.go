package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"paragon-site/internal/config"
	"paragon-site/internal/content"
	"paragon-site/internal/lead"
	"paragon-site/internal/logger"
	"paragon-site/internal/metrics"
	"paragon-site/internal/schema"
	"paragon-site/internal/seo"
	"paragon-site/internal/server"
	"paragon-site/internal/webhook"
	"paragon-site/middleware/ratelimit"
	"paragon-site/middleware/ratelimit/domain"
	"paragon-site/middleware/ratelimit/infra"
)

func main() {
	if err := run(); err != nil {
		logger.NewLogger("error").Error("site exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel)

	site, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return err
	}
	graph, err := schema.Pages(site)
	if err != nil {
		return err
	}

	m, err := metrics.New(cfg.MetricsNamespace)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := infra.NewStore(infra.WithSweepEvery(cfg.Lead.SweepEvery))

	memStats := infra.NewMemoryStatsStore()
	promStats, err := infra.NewPrometheusStatsStore(m.Registerer(), cfg.MetricsNamespace)
	if err != nil {
		return err
	}
	stats := []domain.StatsStore{memStats, promStats}
	if cfg.Stats.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Stats.RedisAddr,
			Password: cfg.Stats.RedisPassword,
			DB:       cfg.Stats.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			return err
		}

		stats = append(stats, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.Stats.Prefix),
			infra.WithStatsTTL(cfg.Stats.TTL),
			infra.WithStatsBucket(cfg.Stats.Bucket),
			infra.WithStatsTrackKeys(cfg.Stats.TrackKeys),
		))
	}

	notifier := webhook.New(cfg.Webhook.URL,
		webhook.WithSource(cfg.Webhook.Source),
		webhook.WithTimeout(cfg.Webhook.Timeout),
		webhook.WithRate(cfg.Webhook.RPS, cfg.Webhook.Burst),
		webhook.WithLogger(log.With("component", "webhook")),
		webhook.WithObserver(m),
	)

	leads := lead.NewHandler(notifier,
		lead.WithLogger(log.With("component", "lead")),
		lead.WithObserver(m),
	)
	limiter := ratelimit.Middleware(ratelimit.Options{
		Ledger: store,
		Limit: domain.Limit{
			MaxRequests: cfg.Lead.MaxRequests,
			Window:      cfg.Lead.Window,
		},
		Stats:        infra.MultiStats(stats...),
		RejectStatus: http.StatusTooManyRequests,
		RetryAfter:   cfg.Lead.RetryAfter,
	})

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: server.New(server.Options{
			Leads:              leads.Chain(limiter),
			Graph:              graph,
			SEO:                seo.NewHandlers(site, log, nil),
			Metrics:            m,
			Log:                log,
			ConcurrencyMax:     cfg.Concurrency.Max,
			ConcurrencyTimeout: cfg.Concurrency.Timeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	log.Info("site listening", "addr", cfg.ListenAddr, "pages", len(graph))
	log.Info("lead rate limit", "max", cfg.Lead.MaxRequests, "window", cfg.Lead.Window, "sweep_every", cfg.Lead.SweepEvery)
	log.Info("webhook", "enabled", notifier.Enabled(), "rps", cfg.Webhook.RPS, "burst", cfg.Webhook.Burst, "timeout", cfg.Webhook.Timeout)
	log.Info("rate stats", "redis", cfg.Stats.Enabled, "redis_addr", cfg.Stats.RedisAddr, "bucket", cfg.Stats.Bucket, "ttl", cfg.Stats.TTL)
	log.Info("concurrency", "max", cfg.Concurrency.Max, "acquire_timeout", cfg.Concurrency.Timeout)

	g, gctx := errgroup.WithContext(ctx)
	store.StartJanitor(gctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		notifier.Wait()
		return err
	})

	err = g.Wait()
	total := memStats.Total()
	log.Info("site stopped", "leads_allowed", total.Allowed, "leads_denied", total.Denied, "tracked_keys", store.Len())
	return err
}
