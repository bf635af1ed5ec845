package service

import (
	"sort"

	"sales-analytics/internal/analytics/model"
)

// UnitsBySKU: штуки по FinalSKU (одна строка = одна штука).
func UnitsBySKU(rows []model.CanonicalRow) map[string]int {
	m := make(map[string]int)
	for _, r := range rows {
		m[r.FinalSKU]++
	}
	return m
}

// Reconcile: внешнее соединение спроса (выполненные заказы) и остатков.
// SKU, которого нет с одной из сторон, получает там 0.
func Reconcile(completed []model.CanonicalRow, inventory []model.InventoryRow) model.StockReport {
	sold := UnitsBySKU(completed)
	avail := make(map[string]int, len(inventory))
	for _, r := range inventory {
		avail[r.SKU] += r.Available
	}

	keys := make(map[string]struct{}, len(sold)+len(avail))
	for k := range sold {
		keys[k] = struct{}{}
	}
	for k := range avail {
		keys[k] = struct{}{}
	}

	rep := model.StockReport{Rows: make([]model.StockRow, 0, len(keys))}
	for sku := range keys {
		row := model.StockRow{SKU: sku, UnitsSold: sold[sku], Available: avail[sku]}
		row.StockToOrder = max(0, row.UnitsSold-row.Available)
		rep.Rows = append(rep.Rows, row)

		if row.StockToOrder > 0 {
			rep.Restock = append(rep.Restock, row)
		}
		if row.UnitsSold == 0 && row.Available > 0 {
			rep.DeadStock = append(rep.DeadStock, row)
		}
	}

	sort.Slice(rep.Rows, func(i, j int) bool { return rep.Rows[i].SKU < rep.Rows[j].SKU })
	sortStock(rep.Restock, func(r model.StockRow) int { return r.StockToOrder })
	sortStock(rep.DeadStock, func(r model.StockRow) int { return r.Available })
	return rep
}

// по убыванию метрики, при равенстве по SKU
func sortStock(rows []model.StockRow, metric func(model.StockRow) int) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := metric(rows[i]), metric(rows[j])
		if a != b {
			return a > b
		}
		return rows[i].SKU < rows[j].SKU
	})
}
