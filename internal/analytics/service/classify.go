package service

import (
	"strings"

	"sales-analytics/internal/analytics/model"
)

const cancelMarker = "CANCEL"

// NormalizeStatus: статус в верхнем регистре, по нему и классифицируем.
func NormalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Classify: всё, где встречается CANCEL, считается отменой; остальное (в том числе
// пустой статус) считается выполненным заказом.
func Classify(status string) model.Outcome {
	if strings.Contains(NormalizeStatus(status), cancelMarker) {
		return model.Cancelled
	}
	return model.Completed
}

// Partition делит строки по Outcome. Порядок внутри частей сохраняется.
func Partition(rows []model.CanonicalRow) (completed, cancelled []model.CanonicalRow) {
	for _, r := range rows {
		if r.Outcome == model.Cancelled {
			cancelled = append(cancelled, r)
		} else {
			completed = append(completed, r)
		}
	}
	return completed, cancelled
}
