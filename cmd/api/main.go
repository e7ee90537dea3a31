package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/marivelle/catalog-backend/api/routes"
	"github.com/marivelle/catalog-backend/internal/admin"
	"github.com/marivelle/catalog-backend/internal/auth"
	category "github.com/marivelle/catalog-backend/internal/categories"
	product "github.com/marivelle/catalog-backend/internal/products"
	"github.com/marivelle/catalog-backend/internal/settings"
	showroom "github.com/marivelle/catalog-backend/internal/showrooms"
	user "github.com/marivelle/catalog-backend/internal/users"
	"github.com/marivelle/catalog-backend/internal/wishlist"
	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/db"
	"github.com/marivelle/catalog-backend/pkg/logger"
	"github.com/marivelle/catalog-backend/pkg/metrics"
	"github.com/marivelle/catalog-backend/pkg/migrate"
	"github.com/marivelle/catalog-backend/pkg/redis"
	"github.com/marivelle/catalog-backend/pkg/uploads"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	uploadStore, err := uploads.NewStore(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	conn := dbClient.DB()
	userRepo := user.NewRepository(conn)
	categoryRepo := category.NewRepository(conn)
	productRepo := product.NewRepository(conn)
	showroomRepo := showroom.NewRepository(conn)
	settingRepo := settings.NewRepository(conn)
	wishlistRepo := wishlist.NewRepository(conn)

	authService, err := auth.NewService(userRepo, cfg.JWT)
	exitOnError(logg, "auth service", err)
	categoryService, err := category.NewService(categoryRepo)
	exitOnError(logg, "category service", err)
	productService, err := product.NewService(productRepo, dbClient)
	exitOnError(logg, "product service", err)
	showroomService, err := showroom.NewService(showroomRepo)
	exitOnError(logg, "showroom service", err)
	settingService, err := settings.NewService(settingRepo, dbClient)
	exitOnError(logg, "setting service", err)
	wishlistService, err := wishlist.NewService(wishlistRepo, productRepo)
	exitOnError(logg, "wishlist service", err)
	adminService, err := admin.NewService(userRepo, productRepo, categoryRepo)
	exitOnError(logg, "admin service", err)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Registry:    registry,
		HTTPMetrics: httpMetrics,
		Uploads:     uploadStore,
		Users:       userRepo,
		Auth:        authService,
		Categories:  categoryService,
		Products:    productService,
		Showrooms:   showroomService,
		Settings:    settingService,
		Wishlist:    wishlistService,
		Admin:       adminService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		shutdownErrs := server.Shutdown(timeoutCtx)
		shutdownErrs = multierr.Append(shutdownErrs, redisClient.Close())
		shutdownErrs = multierr.Append(shutdownErrs, dbClient.Close())
		if shutdownErrs != nil {
			logg.Error(ctx, "shutdown completed with errors", shutdownErrs)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
