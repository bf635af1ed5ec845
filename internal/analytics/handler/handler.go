package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sales-analytics/internal/analytics/model"
	"sales-analytics/internal/analytics/service"
	"sales-analytics/internal/config"
	"sales-analytics/internal/middleware"
)

func init() {
	// деньги в JSON числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

type Handler struct {
	cfg   config.Config
	cache *service.Cache
	log   zerolog.Logger
}

func New(cfg config.Config, cache *service.Cache, logger zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, cache: cache, log: logger}
}

// load, общий путь: загрузка, разбор, кеш нормализации.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (model.Dataset, bool, zerolog.Logger, bool) {
	log := h.log.With().Str("rid", middleware.GetRequestID(r)).Logger()

	inv, sales, err := readUpload(r, int64(h.cfg.MaxUploadMB)<<20)
	if err != nil {
		writeError(w, log, err)
		return model.Dataset{}, false, log, false
	}
	ds, hit, err := h.cache.Load(inv, sales)
	if err != nil {
		writeError(w, log, err)
		return model.Dataset{}, false, log, false
	}
	log.Debug().
		Str("order_col", ds.Columns.OrderID).
		Str("status_col", ds.Columns.Status).
		Bool("cache_hit", hit).
		Msg("dataset ready")
	return ds, hit, log, true
}

// Dashboard (POST /dashboard): все представления одним ответом.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer r.Body.Close()

	ds, hit, log, ok := h.load(w, r)
	if !ok {
		return
	}
	rep, err := service.BuildReport(r.Context(), ds, reportOptions(r, h.cfg.TopSKUs))
	if err != nil {
		writeError(w, log, err)
		return
	}
	rep.CacheHit = hit
	writeJSON(w, log, http.StatusOK, rep)

	log.Info().
		Int("rows", ds.Stats.CanonicalRows).
		Int("inventory", ds.Stats.InventoryRows).
		Bool("cache_hit", hit).
		Dur("elapsed", time.Since(start)).
		Msg("dashboard done")
}

// View (POST /views/{view}): одно представление.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	name := chi.URLParam(r, "view")

	// неизвестное имя отсекаем до чтения файлов
	if err := service.CheckView(name); err != nil {
		writeError(w, h.log, err)
		return
	}

	ds, _, log, ok := h.load(w, r)
	if !ok {
		return
	}
	v, err := service.View(ds, name, reportOptions(r, h.cfg.TopSKUs))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, v)
}

// Health: GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
