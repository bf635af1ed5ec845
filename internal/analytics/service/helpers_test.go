package service

import (
	"github.com/shopspring/decimal"

	"sales-analytics/internal/analytics/model"
	"sales-analytics/internal/fileio"
)

var salesHeader = []string{"Order #", "Seller SKUs", "Products", "Order Status", "Channel", "Uniware Created At", "Order Price"}

// salesTable: строки в порядке salesHeader.
func salesTable(rows ...[]string) fileio.Table {
	return fileio.NewTable(append([][]string{salesHeader}, rows...), 1)
}

func invTable(rows ...[]string) fileio.Table {
	return fileio.NewTable(append([][]string{{"Sku Code", "Available (ATP)"}}, rows...), 1)
}

// row: каноническая строка для тестов агрегаций.
func row(order, sku, channel, date string, amount int64, out model.Outcome) model.CanonicalRow {
	return model.CanonicalRow{
		OrderID:  order,
		FinalSKU: sku,
		Channel:  channel,
		Date:     date,
		Amount:   decimal.NewFromInt(amount),
		Outcome:  out,
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
