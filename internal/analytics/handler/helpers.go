package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"sales-analytics/internal/analytics/model"
	"sales-analytics/internal/analytics/service"
	"sales-analytics/internal/fileio"
)

var ErrMissingUpload = errors.New("missing upload")

// readUpload: оба файла из multipart-формы, уже распарсенные в таблицы.
func readUpload(r *http.Request, maxMemory int64) (inv, sales fileio.Table, err error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return inv, sales, fmt.Errorf("%w: bad multipart form: %v", ErrMissingUpload, err)
	}
	inv, err = readPart(r, "inventory", atoi(r.FormValue("inventory_header_row"), 1))
	if err != nil {
		return inv, sales, err
	}
	sales, err = readPart(r, "sales", atoi(r.FormValue("sales_header_row"), 1))
	return inv, sales, err
}

func readPart(r *http.Request, field string, headerRow int) (fileio.Table, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return fileio.Table{}, fmt.Errorf("%w: %s: %v", ErrMissingUpload, field, err)
	}
	defer f.Close()

	t, err := fileio.ReadTable(f, hdr.Filename, headerRow)
	if err != nil {
		return fileio.Table{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

// reportOptions из query/form; мусор -> дефолты.
func reportOptions(r *http.Request, defTop int) service.ReportOptions {
	return service.ReportOptions{
		TrendMetric: model.TrendMetric(strings.ToLower(strings.TrimSpace(r.FormValue("trend_metric")))),
		SKUSort:     service.SKUSort(strings.ToLower(strings.TrimSpace(r.FormValue("sku_sort")))),
		Top:         atoi(r.FormValue("top"), defTop),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingUpload),
		errors.Is(err, fileio.ErrUnsupportedFile),
		errors.Is(err, service.ErrColumnNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	code := statusFor(err)
	ev := log.Warn()
	if code >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Int("status", code).Msg("request failed")
	writeJSON(w, log, code, map[string]string{"error": err.Error()})
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}
