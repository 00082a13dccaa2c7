package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shiiiru/betsmoke/internal/auth"
	"github.com/shiiiru/betsmoke/internal/guard"
	"github.com/shiiiru/betsmoke/internal/handler"
	"github.com/shiiiru/betsmoke/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Book   *service.Book
	JWTMgr *auth.JWTManager
	Logger *slog.Logger

	// Optional
	AuthLimiter *guard.RateLimiter
	Metrics     *prometheus.Registry
}

// NewRouter assembles the reference betting API: public reads and auth under
// /api, bettor routes behind Authenticate, and admin routes behind
// RequireAdmin.
func NewRouter(deps RouterDeps) chi.Router {
	authHandler := handler.NewAuthHandler(deps.Book)
	catalogHandler := handler.NewCatalogHandler(deps.Book)
	betHandler := handler.NewBetHandler(deps.Book)
	bonusHandler := handler.NewBonusHandler(deps.Book)
	reportHandler := handler.NewReportHandler(deps.Book)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(deps.Logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(deps.Logger))
	r.Use(handler.JSONContentType)
	if deps.Metrics != nil {
		r.Use(handler.NewHTTPMetrics(deps.Metrics).Middleware)
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if deps.AuthLimiter != nil {
				r.Use(handler.RateLimit(deps.AuthLimiter))
			}
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})

		r.Get("/games", catalogHandler.ListGames)
		r.Get("/matches", catalogHandler.ListMatches)
		r.Get("/matches/{id}", catalogHandler.GetMatch)
		r.Get("/bonuses", bonusHandler.List)

		// Any realm
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(deps.JWTMgr))

			r.Get("/auth/me", authHandler.Me)
			r.Post("/bets/place", betHandler.Place)
			r.Post("/bets/combined", betHandler.PlaceCombined)
			r.Get("/bets/my", betHandler.My)
			r.Get("/bets/combined/my", betHandler.MyCombined)
			r.Post("/bonuses/{id}/purchase", bonusHandler.Purchase)
			r.Get("/transactions/my", reportHandler.MyTransactions)
		})

		// Admin realm only
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(deps.JWTMgr))
			r.Use(auth.RequireAdmin)

			r.Post("/games", catalogHandler.CreateGame)
			r.Post("/matches", catalogHandler.CreateMatch)
			r.Post("/bonuses", bonusHandler.Create)
			r.Get("/bets/all", betHandler.All)
			r.Post("/bets/{id}/validate", betHandler.Validate)
			r.Get("/admin/stats", reportHandler.Stats)
		})
	})

	return r
}
