package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drivedeal/drivedeal-backend/internal/api"
	"github.com/drivedeal/drivedeal-backend/internal/auth"
	"github.com/drivedeal/drivedeal-backend/internal/config"
	"github.com/drivedeal/drivedeal-backend/internal/db"
	"github.com/drivedeal/drivedeal-backend/internal/logger"
	"github.com/drivedeal/drivedeal-backend/internal/metrics"
	"github.com/drivedeal/drivedeal-backend/internal/repository/postgres"
	"github.com/drivedeal/drivedeal-backend/internal/services"
	"github.com/drivedeal/drivedeal-backend/internal/upload"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)

	userSvc := services.NewUserService(repos.Users)
	listingSvc := services.NewListingService(repos.Listings)
	favSvc := services.NewFavoriteService(repos.Favorites)
	reportSvc := services.NewReportService(repos.Reports)

	if err := userSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("seed admin", "err", err)
		os.Exit(1)
	}

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Error("upload dir", "err", err)
		os.Exit(1)
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	metrics.Init()
	r := api.NewRouter(api.Deps{
		Cfg:       cfg,
		TM:        tm,
		Users:     userSvc,
		Listings:  listingSvc,
		Favorites: favSvc,
		Reports:   reportSvc,
		Uploads:   uploads,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "carrier", cfg.AuthCarrier)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
