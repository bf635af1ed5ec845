package service

import (
	"strings"

	"sales-analytics/internal/analytics/model"
	"sales-analytics/internal/fileio"
	"sales-analytics/internal/utils"
)

type Options struct {
	StrictSchema bool
	Tokens       TokenPredicate // nil -> DefaultTokenRule()
}

func (o Options) tokens() TokenPredicate {
	if o.Tokens == nil {
		return DefaultTokenRule()
	}
	return o.Tokens
}

// Normalize: сырые таблицы в канонический набор строк.
// Порядок: схема -> разворот SKU -> классификация/цены/даты -> склад.
func Normalize(inv, sales fileio.Table, opt Options) (model.Dataset, error) {
	cols, err := ResolveColumns(inv, sales, opt.StrictSchema)
	if err != nil {
		return model.Dataset{Columns: cols}, err
	}
	pred := opt.tokens()

	ds := model.Dataset{
		Columns: cols,
		Rows:    make([]model.CanonicalRow, 0, len(sales.Rows)),
	}
	ds.Stats.RawRows = len(sales.Rows)

	for _, rec := range sales.Rows {
		base := baseRow(rec, cols)
		if base.CreatedAt == nil {
			ds.Stats.Undated++
		}
		if _, ok := utils.ParseAmount(rec[cols.Price]); !ok {
			ds.Stats.BadPrices++
		}

		rows, dropped := Expand(base, rec[cols.SKU], pred)
		ds.Stats.DroppedRows += dropped
		for _, r := range rows {
			if r.Malformed {
				ds.Stats.Malformed++
			}
		}
		ds.Rows = append(ds.Rows, rows...)
	}
	ds.Stats.CanonicalRows = len(ds.Rows)

	ds.Inventory = inventoryRows(inv, cols)
	ds.Stats.InventoryRows = len(ds.Inventory)
	return ds, nil
}

// baseRow: всё, кроме SKU. Это поля, которые копируются на каждый токен.
func baseRow(rec map[string]string, cols model.Columns) model.CanonicalRow {
	status := NormalizeStatus(rec[cols.Status])
	amount, _ := utils.ParseAmount(rec[cols.Price])
	created := ParseTimestamp(rec[cols.CreatedAt])
	return model.CanonicalRow{
		OrderID:   strings.TrimSpace(rec[cols.OrderID]),
		Product:   strings.TrimSpace(rec[cols.Product]),
		Status:    status,
		Outcome:   Classify(status),
		Channel:   strings.TrimSpace(rec[cols.Channel]),
		CreatedAt: created,
		Date:      DateKey(created),
		Amount:    amount,
	}
}

// inventoryRows: пустые коды пропускаем, повторы кода складываем.
func inventoryRows(inv fileio.Table, cols model.Columns) []model.InventoryRow {
	pos := make(map[string]int, len(inv.Rows))
	out := make([]model.InventoryRow, 0, len(inv.Rows))
	for _, rec := range inv.Rows {
		sku := strings.TrimSpace(rec[cols.InvSKU])
		if sku == "" {
			continue
		}
		qty := utils.ParseQuantity(rec[cols.InvAvailable])
		if i, ok := pos[sku]; ok {
			out[i].Available += qty
			continue
		}
		pos[sku] = len(out)
		out = append(out, model.InventoryRow{SKU: sku, Available: qty})
	}
	return out
}
