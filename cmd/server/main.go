package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohits-web03/vybr8r/internal/api"
	"github.com/rohits-web03/vybr8r/internal/api/handlers"
	"github.com/rohits-web03/vybr8r/internal/api/middleware"
	"github.com/rohits-web03/vybr8r/internal/api/services"
	"github.com/rohits-web03/vybr8r/internal/config"
	"github.com/rohits-web03/vybr8r/internal/logger"
	"github.com/rohits-web03/vybr8r/internal/repositories"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type interestStore interface {
	handlers.InterestLister
	SeedDefaults(ctx context.Context) (int, error)
}

// @title VYB-R8R API
// @version 1.0
// @description Wallet sign-in, onboarding and creator profiles.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "vybr8r-api",
		Environment: cfg.Environment,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("Application gracefully stopped.")
}

func run(cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, interests, db, err := openStores(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := repositories.Close(db); err != nil {
				log.Error("closing database failed", "error", err)
			}
		}()
	}

	if n, err := interests.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed interests: %w", err)
	} else if n > 0 {
		log.Info("seeded default interests", "count", n)
	}

	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	resolver := services.NewUserResolver(users, cfg.UserCacheSize, cfg.UserCacheTTL, log)
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, log)

	deps := handlers.Deps{
		Sessions:    services.NewSessions(resolver, tokens),
		Resolver:    resolver,
		Onboarding:  services.NewOnboarding(users, log),
		Interests:   interests,
		Environment: cfg.Environment,
		Logger:      log,
	}
	if cfg.R2.Enabled() {
		deps.Media = repositories.NewMediaStore(cfg.R2)
	} else {
		log.Warn("R2 is not configured, media uploads are disabled")
	}

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.SetupRouter(api.RouterDeps{
			Handler:     handlers.New(deps),
			Tokens:      tokens,
			Users:       resolver,
			AuthLimiter: limiter,
			Cors:        cfg.CorsConfig,
			Logger:      log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting VYB-R8R server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				limiter.Cleanup(10 * time.Minute)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStores connects to Postgres. Development without DB_URL falls back to
// the in-memory store.
func openStores(cfg config.Config, log *slog.Logger) (services.UserStore, interestStore, *gorm.DB, error) {
	if cfg.DB_URL == "" && !cfg.IsProduction() {
		log.Warn("DB_URL is not set, using in-memory store")
		mem := repositories.NewMemoryStore()
		return mem, mem, nil, nil
	}

	db, err := repositories.ConnectDatabase(cfg.DB_URL)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("Connected to PostgreSQL database")
	return repositories.NewUserRepository(db), repositories.NewInterestRepository(db), db, nil
}
