package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Columns: какие реальные заголовки выбраны под логические поля.
type Columns struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	SKU       string `json:"sku"`
	Product   string `json:"product"`
	Channel   string `json:"channel"`
	CreatedAt string `json:"createdAt"`
	Price     string `json:"price"`

	InvSKU       string `json:"inventorySku"`
	InvAvailable string `json:"inventoryAvailable"`
}

type Outcome int

const (
	Completed Outcome = iota
	Cancelled
)

func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}
	return "completed"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// CanonicalRow: одна строка на пару (заказ, SKU-токен) после разворота.
type CanonicalRow struct {
	OrderID   string          `json:"orderId"`
	RawToken  string          `json:"rawToken"`
	FinalSKU  string          `json:"finalSku"`
	Malformed bool            `json:"malformed"`
	Product   string          `json:"product"`
	Status    string          `json:"status"` // в верхнем регистре
	Outcome   Outcome         `json:"outcome"`
	Channel   string          `json:"channel"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	Date      string          `json:"date,omitempty"` // YYYY-MM-DD, пусто если время не распарсилось
	Amount    decimal.Decimal `json:"amount"`
}

type InventoryRow struct {
	SKU       string `json:"sku"`
	Available int    `json:"available"`
}

// Stats: сколько чего отсеяли по дороге.
type Stats struct {
	RawRows       int `json:"rawRows"`
	CanonicalRows int `json:"canonicalRows"`
	DroppedRows   int `json:"droppedRows"`
	Malformed     int `json:"malformedTokens"`
	Undated       int `json:"undatedRows"`
	BadPrices     int `json:"badPrices"`
	InventoryRows int `json:"inventoryRows"`
}

// Dataset: результат нормализации, именно он кешируется.
type Dataset struct {
	Rows      []CanonicalRow
	Inventory []InventoryRow
	Columns   Columns
	Stats     Stats
}

// ===== views =====

type KPIs struct {
	TotalOrders     int             `json:"totalOrders"`
	CompletedOrders int             `json:"completedOrders"`
	CancelledOrders int             `json:"cancelledOrders"`
	UnitsSold       int             `json:"unitsSold"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

type StockRow struct {
	SKU          string `json:"sku"`
	UnitsSold    int    `json:"unitsSold"`
	Available    int    `json:"available"`
	StockToOrder int    `json:"stockToOrder"`
}

type StockReport struct {
	Rows      []StockRow `json:"rows"`
	Restock   []StockRow `json:"restock"`
	DeadStock []StockRow `json:"deadStock"`
}

type SKUTotal struct {
	SKU     string          `json:"sku"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ChannelShare struct {
	Channel string  `json:"channel"`
	Units   int     `json:"units"`
	Share   float64 `json:"share"` // 0..100
}

// Matrix, сводная таблица: строки x колонки, пустые ячейки = 0.
type Matrix struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

// Cell по ключам; отсутствующая пара -> 0.
func (m Matrix) Cell(row, col string) int {
	ri, ci := indexOf(m.Rows, row), indexOf(m.Columns, col)
	if ri < 0 || ci < 0 {
		return 0
	}
	return m.Cells[ri][ci]
}

// Sum всех ячеек.
func (m Matrix) Sum() int {
	n := 0
	for _, r := range m.Cells {
		for _, v := range r {
			n += v
		}
	}
	return n
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

type TrendMetric string

const (
	MetricUnits   TrendMetric = "units"
	MetricRevenue TrendMetric = "revenue"
)

type TrendPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type DailyAverages struct {
	Days              int             `json:"days"`
	AvgUnitsPerDay    decimal.Decimal `json:"avgUnitsPerDay"`
	AvgRevenuePerDay  decimal.Decimal `json:"avgRevenuePerDay"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// DailyChannel: дата x канал (штуки) + итоги по строке.
type DailyChannel struct {
	Matrix
	TotalUnits   []int             `json:"totalUnits"`
	TotalRevenue []decimal.Decimal `json:"totalRevenue"`
}

// Report: всё, что отдаём UI одним ответом.
type Report struct {
	Columns       Columns        `json:"columns"`
	Stats         Stats          `json:"stats"`
	CacheHit      bool           `json:"cacheHit"`
	KPIs          KPIs           `json:"kpis"`
	Stock         StockReport    `json:"stock"`
	SKUTotals     []SKUTotal     `json:"skuTotals"`
	TopSKUs       []SKUTotal     `json:"topSkus"`
	SKUValue      []SKUTotal     `json:"skuValue"`
	ChannelMix    []ChannelShare `json:"channelMix"`
	Cancellations Matrix         `json:"cancellations"`
	TrendMetric   TrendMetric    `json:"trendMetric"`
	DailyTrend    []TrendPoint   `json:"dailyTrend"`
	DailyAverages DailyAverages  `json:"dailyAverages"`
	DailyChannel  DailyChannel   `json:"dailyChannel"`
}
