package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tiopelotte/storefront-api/api/routes"
	cartsvc "github.com/tiopelotte/storefront-api/internal/cart"
	"github.com/tiopelotte/storefront-api/internal/catalog"
	checkoutsvc "github.com/tiopelotte/storefront-api/internal/checkout"
	ordersvc "github.com/tiopelotte/storefront-api/internal/orders"
	sessionsvc "github.com/tiopelotte/storefront-api/internal/session"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	"github.com/tiopelotte/storefront-api/pkg/config"
	"github.com/tiopelotte/storefront-api/pkg/logger"
	"github.com/tiopelotte/storefront-api/pkg/mercadopago"
	"github.com/tiopelotte/storefront-api/pkg/metrics"
	"github.com/tiopelotte/storefront-api/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cmsClient, err := cms.NewClient(cfg.CMS)
	if err != nil {
		logg.Error(context.Background(), "failed to create cms client", err)
		os.Exit(1)
	}

	mpClient, err := mercadopago.NewClient(cfg.MercadoPago)
	if err != nil {
		logg.Error(context.Background(), "failed to create mercado pago client", err)
		os.Exit(1)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	catalogService := catalog.NewService(cmsClient, logg)
	cartService := cartsvc.NewService(cartsvc.NewStore(redisClient, cfg.Cart.TTL), cmsClient, logg)
	checkoutService := checkoutsvc.NewService(
		checkoutsvc.NewStateStore(redisClient, cfg.Checkout.StateTTL),
		cartService,
		cmsClient,
		mpClient,
		checkoutMetrics,
		logg,
	)
	orderService := ordersvc.NewService(cmsClient, logg)
	sessionService := sessionsvc.NewService(cmsClient, redisClient, cfg.JWT.SessionTTL, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			Redis:    redisClient,
			CMS:      cmsClient,
			Catalog:  catalogService,
			Cart:     cartService,
			Checkout: checkoutService,
			Orders:   orderService,
			Sessions: sessionService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			os.Exit(1)
		}
	}
}
