package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rohits-web03/vybr8r/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/vybr8r/internal/api/handlers"
	"github.com/rohits-web03/vybr8r/internal/api/middleware"
	"github.com/rohits-web03/vybr8r/internal/metrics"
	"github.com/rs/cors"
)

type RouterDeps struct {
	Handler     *handlers.Handler
	Tokens      middleware.TokenParser
	Users       middleware.UserChecker
	AuthLimiter *middleware.RateLimiter
	Cors        cors.Options
	Logger      *slog.Logger
}

// SetupRouter registers every route on one mux with method patterns so the
// metrics middleware can label requests by pattern.
func SetupRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	h := d.Handler
	auth := middleware.AuthMiddleware(d.Tokens, d.Users, d.Logger)

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", handlers.Liveness)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	walletAuth := http.Handler(http.HandlerFunc(h.WalletAuth))
	if d.AuthLimiter != nil {
		walletAuth = d.AuthLimiter.Handler(walletAuth)
	}
	mux.Handle("POST /api/auth/wallet-auth", walletAuth)
	mux.HandleFunc("GET /api/auth/onboarding-status", h.OnboardingStatus)

	mux.HandleFunc("GET /api/users", h.ListCreators)
	mux.HandleFunc("GET /api/users/{handle}", h.GetUserByHandle)
	mux.HandleFunc("GET /api/interests", h.ListInterests)
	mux.HandleFunc("GET /api/interests/user/{userId}", h.UserInterests)

	// ---------- PROTECTED ROUTES ----------
	mux.Handle("GET /api/users/me", auth(http.HandlerFunc(h.Me)))
	mux.Handle("PUT /api/users/onboarding", auth(http.HandlerFunc(h.CompleteOnboarding)))
	mux.Handle("POST /api/users/media/presign", auth(http.HandlerFunc(h.PresignMedia)))

	d.Logger.Info("Router initialized")

	c := cors.New(d.Cors)
	var handler http.Handler = c.Handler(mux)
	handler = metrics.Middleware(handler)
	handler = middleware.Logger(d.Logger)(handler)
	return handler
}
