package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/seed"
	"storefront/internal/store"
	"storefront/internal/web"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}
	cfg := config.AppEnv

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, items, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("store init failed", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStores()

	if _, err := seed.Load(ctx, products); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	handlers.RequestTimeout = cfg.RequestTimeout
	carts := cart.NewService(items, products, cfg.Pricing)

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal("template parse failed", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Session(),
	)
	r.SetHTMLTemplate(tmpl)
	handlers.Register(r, products, carts)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("backend", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg config.Config) (store.ProductStore, store.CartStore, func(), error) {
	if cfg.StoreBackend != config.BackendMongo {
		return store.NewMemoryProducts(nil), store.NewMemoryCart(nil), func() {}, nil
	}

	client, products, items, err := database.Open(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			zap.L().Warn("mongo disconnect failed", zap.Error(err))
		}
	}
	return products, items, closeFn, nil
}
