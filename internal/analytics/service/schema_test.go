package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-analytics/internal/fileio"
)

func TestColumnResolvePriority(t *testing.T) {
	got, err := colOrderID.Resolve([]string{"Order Code", "Order ID"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Order ID", got)

	got, err = colStatus.Resolve([]string{" Status "}, true)
	require.NoError(t, err)
	assert.Equal(t, "Status", got)

	got, err = colStatus.Resolve([]string{"Status", "Order Status"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Order Status", got)
}

func TestColumnResolveMiss(t *testing.T) {
	_, err := colOrderID.Resolve([]string{"Invoice"}, true)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), `"Order Number"`)

	got, err := colOrderID.Resolve([]string{"Invoice"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Order #", got)

	// необязательное поле в strict не падает
	got, err = colChannel.Resolve(nil, true)
	require.NoError(t, err)
	assert.Equal(t, "Channel", got)
}

func TestResolveColumns(t *testing.T) {
	sales := fileio.NewTable([][]string{{" Order Number", "Seller SKUs ", "Status"}}, 1)
	inv := fileio.NewTable([][]string{{"Sku Code  ", "Available (ATP)"}}, 1)

	cols, err := ResolveColumns(inv, sales, true)
	require.NoError(t, err)
	assert.Equal(t, "Order Number", cols.OrderID)
	assert.Equal(t, "Status", cols.Status)
	assert.Equal(t, "Seller SKUs", cols.SKU)
	assert.Equal(t, "Sku Code", cols.InvSKU)
}

func TestResolveColumnsStrictReportsAllMisses(t *testing.T) {
	sales := fileio.NewTable([][]string{{"Seller SKUs"}}, 1)
	inv := fileio.NewTable([][]string{{"Code"}}, 1)

	_, err := ResolveColumns(inv, sales, true)
	require.ErrorIs(t, err, ErrColumnNotFound)
	for _, want := range []string{"order id", "status", "inventory sku"} {
		assert.Contains(t, err.Error(), want)
	}

	cols, err := ResolveColumns(inv, sales, false)
	require.NoError(t, err)
	assert.Equal(t, "Order #", cols.OrderID)
	assert.Equal(t, "Order Status", cols.Status)
}
