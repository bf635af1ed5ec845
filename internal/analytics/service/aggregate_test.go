package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/internal/analytics/model"
)

func sampleRows() []model.CanonicalRow {
	return []model.CanonicalRow{
		row("1", "A", "AMAZON", "2024-03-01", 100, model.Completed),
		row("1", "B", "AMAZON", "2024-03-01", 200, model.Completed),
		row("2", "A", "FLIPKART", "2024-03-02", 100, model.Completed),
		row("3", "B", "MYNTRA", "2024-03-02", 50, model.Cancelled),
		row("4", "B", "AMAZON", "", 10, model.Cancelled),
		row("5", "C", "", "2024-03-02", 30, model.Completed),
	}
}

func TestSKUTotals(t *testing.T) {
	completed, _ := Partition(sampleRows())

	byUnits := SKUTotals(completed, SortByUnits, 0)
	require.Len(t, byUnits, 3)
	assert.Equal(t, "A", byUnits[0].SKU)
	assert.Equal(t, 2, byUnits[0].Units)
	assert.True(t, byUnits[0].Revenue.Equal(dec(200)))

	byRev := SKUTotals(completed, SortByRevenue, 0)
	assert.Equal(t, []string{"A", "B", "C"}, skus(byRev)) // A и B по 200, у A больше штук

	top := SKUTotals(completed, SortByUnits, 1)
	assert.Equal(t, []string{"A"}, skus(top))
}

func skus(xs []model.SKUTotal) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.SKU
	}
	return out
}

func TestChannelMix(t *testing.T) {
	completed, _ := Partition(sampleRows())
	mix := ChannelMix(completed)

	require.Len(t, mix, 3)
	assert.Equal(t, model.ChannelShare{Channel: "AMAZON", Units: 2, Share: 50}, mix[0])
	assert.Equal(t, "FLIPKART", mix[1].Channel)
	assert.Equal(t, UnassignedChannel, mix[2].Channel)

	total := 0
	for _, c := range mix {
		total += c.Units
	}
	assert.Equal(t, len(completed), total)
	assert.Empty(t, ChannelMix(nil))
}

func TestCancellationMatrix(t *testing.T) {
	_, cancelled := Partition(sampleRows())
	m := CancellationMatrix(cancelled)

	assert.Equal(t, []string{"B"}, m.Rows)
	assert.Equal(t, []string{"AMAZON", "MYNTRA"}, m.Columns)
	assert.Equal(t, 1, m.Cell("B", "AMAZON"))
	assert.Equal(t, 0, m.Cell("A", "AMAZON"))
	assert.Equal(t, len(cancelled), m.Sum())
}

func TestCrossTabZeroFill(t *testing.T) {
	rows := []model.CanonicalRow{
		row("1", "A", "X", "", 0, model.Cancelled),
		row("2", "B", "Y", "", 0, model.Cancelled),
		row("3", "B", "Y", "", 0, model.Cancelled),
	}
	m := CancellationMatrix(rows)
	assert.Equal(t, [][]int{{1, 0}, {0, 2}}, m.Cells)
	assert.Equal(t, 3, m.Sum())
}

func TestComputeKPIs(t *testing.T) {
	all := sampleRows()
	completed, cancelled := Partition(all)
	k := ComputeKPIs(all, completed, cancelled)

	assert.Equal(t, 5, k.TotalOrders)
	assert.Equal(t, 3, k.CompletedOrders)
	assert.Equal(t, 2, k.CancelledOrders)
	assert.Equal(t, 4, k.UnitsSold)
	assert.True(t, k.NetRevenue.Equal(dec(430)))
}
