package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/karibu-retail/storefront-gateway/api/controllers"
	"github.com/karibu-retail/storefront-gateway/api/routes"
	cartsvc "github.com/karibu-retail/storefront-gateway/internal/cart"
	catalogsvc "github.com/karibu-retail/storefront-gateway/internal/catalog"
	checkoutsvc "github.com/karibu-retail/storefront-gateway/internal/checkout"
	dashsvc "github.com/karibu-retail/storefront-gateway/internal/dashboard"
	salesvc "github.com/karibu-retail/storefront-gateway/internal/manualsale"
	"github.com/karibu-retail/storefront-gateway/pkg/config"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/metrics"
	"github.com/karibu-retail/storefront-gateway/pkg/redis"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	upstreamClient, err := upstream.NewClient(cfg.Upstream.BaseURL, upstream.WithTimeout(cfg.Upstream.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	pingers := map[string]controllers.Pinger{"upstream": upstreamClient}

	var (
		cartStore   cartsvc.Store
		saleStore   salesvc.SessionStore
		redisClient *redis.Client
	)
	if cfg.FeatureFlags.UseSQLite {
		store, err := cartsvc.NewSQLiteStore(cfg.Cart.SQLitePath, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to open sqlite cart store", err)
			os.Exit(1)
		}
		cartStore = store
	}
	if !cfg.FeatureFlags.UseSQLite || cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = redisClient
	}
	if cartStore == nil {
		cartStore = cartsvc.NewRedisStore(redisClient, logg, cfg.Cart.TTL)
	}
	if redisClient != nil {
		saleStore = salesvc.NewRedisSessionStore(redisClient, logg, cfg.ManualSale.SessionTTL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	refreshMetrics := metrics.NewRefreshMetrics(registry)

	cartService, err := cartsvc.NewService(cartStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var catalogService catalogsvc.Service
	if redisClient != nil {
		catalogService, err = catalogsvc.NewService(upstreamClient, redisClient, logg, cfg.Search.MinQueryLength)
	} else {
		catalogService, err = catalogsvc.NewService(upstreamClient, nil, logg, cfg.Search.MinQueryLength)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	var saleService salesvc.Service
	if saleStore != nil {
		saleService, err = salesvc.NewService(saleStore, upstreamClient, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create manual sale service", err)
			os.Exit(1)
		}
	}

	dashboardService, err := dashsvc.NewService(upstreamClient, logg, refreshMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	refresher, err := dashsvc.NewRefresher(dashboardService, logg, cfg.Dashboard.RefreshInterval)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard refresher", err)
		os.Exit(1)
	}
	if err := refresher.Start(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to start dashboard refresher", err)
		os.Exit(1)
	}
	defer refresher.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			Pingers:   pingers,
			Registry:  registry,
			Catalog:   catalogService,
			Cart:      cartService,
			Checkout:  checkoutService,
			Sale:      saleService,
			Dashboard: dashboardService,
			Snapshots: refresher,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
