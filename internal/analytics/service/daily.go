package service

import (
	"github.com/shopspring/decimal"

	"sales-analytics/internal/analytics/model"
)

type dayBucket struct {
	units   int
	revenue decimal.Decimal
}

// byDay: выполненные строки по дате; без даты не участвуют.
func byDay(completed []model.CanonicalRow) (map[string]*dayBucket, []string) {
	days := make(map[string]*dayBucket)
	for _, r := range completed {
		if r.Date == "" {
			continue
		}
		b := days[r.Date]
		if b == nil {
			b = &dayBucket{revenue: decimal.Zero}
			days[r.Date] = b
		}
		b.units++
		b.revenue = b.revenue.Add(r.Amount)
	}
	return days, sortedKeys(days)
}

// DailyTrend: ряд по датам по возрастанию, штуки или выручка.
func DailyTrend(completed []model.CanonicalRow, metric model.TrendMetric) []model.TrendPoint {
	days, keys := byDay(completed)
	out := make([]model.TrendPoint, 0, len(keys))
	for _, d := range keys {
		v := decimal.NewFromInt(int64(days[d].units))
		if metric == model.MetricRevenue {
			v = days[d].revenue
		}
		out = append(out, model.TrendPoint{Date: d, Value: v})
	}
	return out
}

// ComputeDailyAverages: средние по дням и AOV. AOV считается по всей
// выручке выполненных строк (с датой и без), делённой на число
// уникальных заказов; нет заказов -> 0.
func ComputeDailyAverages(completed []model.CanonicalRow) model.DailyAverages {
	days, keys := byDay(completed)
	res := model.DailyAverages{
		Days:              len(keys),
		AvgUnitsPerDay:    decimal.Zero,
		AvgRevenuePerDay:  decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	if n := len(keys); n > 0 {
		units, revenue := 0, decimal.Zero
		for _, d := range keys {
			units += days[d].units
			revenue = revenue.Add(days[d].revenue)
		}
		nd := decimal.NewFromInt(int64(n))
		res.AvgUnitsPerDay = decimal.NewFromInt(int64(units)).Div(nd)
		res.AvgRevenuePerDay = revenue.Div(nd)
	}

	if orders := distinctOrders(completed); orders > 0 {
		res.AverageOrderValue = totalRevenue(completed).Div(decimal.NewFromInt(int64(orders)))
	}
	return res
}

// DailyChannelMatrix: дата x канал (штуки), строки по убыванию даты, плюс
// итог штук по строке и выручка за день (считается по суммам, а не из ячеек).
func DailyChannelMatrix(completed []model.CanonicalRow) model.DailyChannel {
	m := CrossTab(completed, func(r model.CanonicalRow) string { return r.Date })

	// свежие даты сверху
	n := len(m.Rows)
	for i := 0; i < n/2; i++ {
		m.Rows[i], m.Rows[n-1-i] = m.Rows[n-1-i], m.Rows[i]
		m.Cells[i], m.Cells[n-1-i] = m.Cells[n-1-i], m.Cells[i]
	}

	days, _ := byDay(completed)
	out := model.DailyChannel{
		Matrix:       m,
		TotalUnits:   make([]int, n),
		TotalRevenue: make([]decimal.Decimal, n),
	}
	for i, d := range m.Rows {
		for _, v := range m.Cells[i] {
			out.TotalUnits[i] += v
		}
		out.TotalRevenue[i] = days[d].revenue
	}
	return out
}
