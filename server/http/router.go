package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	anHnd "sales-analytics/internal/analytics/handler"
	"sales-analytics/internal/config"
	"sales-analytics/internal/middleware"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, h *anHnd.Handler) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", anHnd.Health)

	r.Post("/dashboard", h.Dashboard)
	r.Post("/views/{view}", h.View)

	return r
}
