package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/internal/analytics/model"
)

func sampleDataset() model.Dataset {
	return model.Dataset{
		Rows:      sampleRows(),
		Inventory: []model.InventoryRow{{SKU: "A", Available: 1}, {SKU: "Z", Available: 6}},
		Columns:   model.Columns{OrderID: "Order #", Status: "Order Status"},
	}
}

func TestBuildReport(t *testing.T) {
	rep, err := BuildReport(context.Background(), sampleDataset(), ReportOptions{TrendMetric: model.MetricRevenue, Top: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, rep.KPIs.UnitsSold)
	assert.Equal(t, model.MetricRevenue, rep.TrendMetric)
	require.Len(t, rep.DailyTrend, 2)
	assert.True(t, rep.DailyTrend[0].Value.Equal(dec(300)))
	assert.Len(t, rep.TopSKUs, 2)
	assert.Len(t, rep.SKUTotals, 3)
	assert.Equal(t, "A", rep.SKUValue[0].SKU)
	assert.Equal(t, 2, rep.Cancellations.Sum())
	require.Len(t, rep.Stock.Restock, 3)
	assert.Equal(t, "A", rep.Stock.Restock[0].SKU)
	require.Len(t, rep.Stock.DeadStock, 1)
	assert.Equal(t, "Z", rep.Stock.DeadStock[0].SKU)
	assert.Equal(t, "Order #", rep.Columns.OrderID)
}

func TestBuildReportCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildReport(ctx, sampleDataset(), ReportOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportOptionsDefaults(t *testing.T) {
	o := ReportOptions{TrendMetric: "bogus", SKUSort: "x"}.normalized()
	assert.Equal(t, model.MetricUnits, o.TrendMetric)
	assert.Equal(t, SortByUnits, o.SKUSort)
	assert.Equal(t, 10, o.Top)
}

func TestView(t *testing.T) {
	v, err := View(sampleDataset(), "kpis", ReportOptions{})
	require.NoError(t, err)
	k, ok := v.(model.KPIs)
	require.True(t, ok)
	assert.Equal(t, 5, k.TotalOrders)

	for _, name := range ViewNames() {
		_, err := View(sampleDataset(), name, ReportOptions{})
		assert.NoError(t, err, name)
	}

	_, err = View(sampleDataset(), "pie-chart", ReportOptions{})
	assert.ErrorIs(t, err, ErrUnknownView)
}
