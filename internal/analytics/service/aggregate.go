package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"sales-analytics/internal/analytics/model"
)

// UnassignedChannel: подпись для строк без канала, чтобы сводные не теряли строки.
const UnassignedChannel = "Unassigned"

func channelOf(r model.CanonicalRow) string {
	if r.Channel == "" {
		return UnassignedChannel
	}
	return r.Channel
}

type SKUSort string

const (
	SortByUnits   SKUSort = "units"
	SortByRevenue SKUSort = "revenue"
)

// SKUTotals: штуки и выручка по FinalSKU. limit <= 0 означает без ограничения.
func SKUTotals(rows []model.CanonicalRow, by SKUSort, limit int) []model.SKUTotal {
	idx := make(map[string]int)
	out := make([]model.SKUTotal, 0)
	for _, r := range rows {
		i, ok := idx[r.FinalSKU]
		if !ok {
			i = len(out)
			idx[r.FinalSKU] = i
			out = append(out, model.SKUTotal{SKU: r.FinalSKU, Revenue: decimal.Zero})
		}
		out[i].Units++
		out[i].Revenue = out[i].Revenue.Add(r.Amount)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case SortByRevenue:
			if c := a.Revenue.Cmp(b.Revenue); c != 0 {
				return c > 0
			}
			if a.Units != b.Units {
				return a.Units > b.Units
			}
		default:
			if a.Units != b.Units {
				return a.Units > b.Units
			}
			if c := a.Revenue.Cmp(b.Revenue); c != 0 {
				return c > 0
			}
		}
		return a.SKU < b.SKU
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ChannelMix: штуки по каналам с долей в процентах.
func ChannelMix(completed []model.CanonicalRow) []model.ChannelShare {
	counts := make(map[string]int)
	for _, r := range completed {
		counts[channelOf(r)]++
	}
	out := make([]model.ChannelShare, 0, len(counts))
	for ch, n := range counts {
		share := 0.0
		if len(completed) > 0 {
			share = decimal.NewFromInt(int64(n)).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(int64(len(completed)))).
				Round(2).InexactFloat64()
		}
		out = append(out, model.ChannelShare{Channel: ch, Units: n, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// CrossTab: счётчик строк по (rowKey, channel); отсутствующие ячейки = 0.
// Строки с пустым rowKey пропускаются.
func CrossTab(rows []model.CanonicalRow, rowKey func(model.CanonicalRow) string) model.Matrix {
	counts := make(map[string]map[string]int)
	colSet := make(map[string]struct{})
	for _, r := range rows {
		k := rowKey(r)
		if k == "" {
			continue
		}
		ch := channelOf(r)
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][ch]++
		colSet[ch] = struct{}{}
	}

	m := model.Matrix{
		Rows:    sortedKeys(counts),
		Columns: sortedKeys(colSet),
	}
	m.Cells = make([][]int, len(m.Rows))
	for i, k := range m.Rows {
		m.Cells[i] = make([]int, len(m.Columns))
		for j, ch := range m.Columns {
			m.Cells[i][j] = counts[k][ch]
		}
	}
	return m
}

// CancellationMatrix: FinalSKU x канал по отменённым строкам.
func CancellationMatrix(cancelled []model.CanonicalRow) model.Matrix {
	return CrossTab(cancelled, func(r model.CanonicalRow) string { return r.FinalSKU })
}

// ComputeKPIs: пять цифр для шапки дашборда.
func ComputeKPIs(all, completed, cancelled []model.CanonicalRow) model.KPIs {
	return model.KPIs{
		TotalOrders:     distinctOrders(all),
		CompletedOrders: distinctOrders(completed),
		CancelledOrders: distinctOrders(cancelled),
		UnitsSold:       len(completed),
		NetRevenue:      totalRevenue(completed),
	}
}

// distinctOrders: уникальные непустые номера заказов.
func distinctOrders(rows []model.CanonicalRow) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if r.OrderID != "" {
			seen[r.OrderID] = struct{}{}
		}
	}
	return len(seen)
}

func totalRevenue(rows []model.CanonicalRow) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Amount)
	}
	return sum
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
