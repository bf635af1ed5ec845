package service

import (
	"errors"
	"fmt"
	"strings"

	"sales-analytics/internal/analytics/model"
	"sales-analytics/internal/fileio"
)

var ErrColumnNotFound = errors.New("column not found")

// Column: логическое поле и его допустимые заголовки в порядке приоритета.
type Column struct {
	Name     string
	Aliases  []string
	Required bool // проверяется только в strict-режиме
}

// таблицы алиасов; первый алиас: он же дефолт в lenient-режиме
var (
	colOrderID   = Column{Name: "order id", Aliases: []string{"Order #", "Order Number", "Order ID", "Order Code"}, Required: true}
	colStatus    = Column{Name: "status", Aliases: []string{"Order Status", "Status"}, Required: true}
	colSKU       = Column{Name: "sku", Aliases: []string{"Seller SKUs"}, Required: true}
	colProduct   = Column{Name: "product", Aliases: []string{"Products"}}
	colChannel   = Column{Name: "channel", Aliases: []string{"Channel"}}
	colCreatedAt = Column{Name: "created at", Aliases: []string{"Uniware Created At"}}
	colPrice     = Column{Name: "price", Aliases: []string{"Order Price"}}

	colInvSKU       = Column{Name: "inventory sku", Aliases: []string{"Sku Code"}, Required: true}
	colInvAvailable = Column{Name: "inventory available", Aliases: []string{"Available (ATP)"}}
)

// Resolve выбирает первый присутствующий алиас. Сравнение по обрезанным
// строкам с обеих сторон. Не нашли: strict -> ошибка (если поле
// обязательное), иначе первый алиас, даже если такой колонки нет.
func (c Column) Resolve(headers []string, strict bool) (string, error) {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = struct{}{}
	}
	for _, a := range c.Aliases {
		a = strings.TrimSpace(a)
		if _, ok := present[a]; ok {
			return a, nil
		}
	}
	if strict && c.Required {
		return "", fmt.Errorf("%w: %s (tried %s)", ErrColumnNotFound, c.Name, quoteList(c.Aliases))
	}
	return c.Aliases[0], nil
}

// ResolveColumns: нормализатор схемы для пары таблиц.
func ResolveColumns(inv, sales fileio.Table, strict bool) (model.Columns, error) {
	var (
		cols model.Columns
		errs []error
	)
	resolve := func(dst *string, c Column, headers []string) {
		v, err := c.Resolve(headers, strict)
		if err != nil {
			errs = append(errs, err)
		}
		*dst = v
	}

	resolve(&cols.OrderID, colOrderID, sales.Headers)
	resolve(&cols.Status, colStatus, sales.Headers)
	resolve(&cols.SKU, colSKU, sales.Headers)
	resolve(&cols.Product, colProduct, sales.Headers)
	resolve(&cols.Channel, colChannel, sales.Headers)
	resolve(&cols.CreatedAt, colCreatedAt, sales.Headers)
	resolve(&cols.Price, colPrice, sales.Headers)
	resolve(&cols.InvSKU, colInvSKU, inv.Headers)
	resolve(&cols.InvAvailable, colInvAvailable, inv.Headers)

	if len(errs) > 0 {
		return cols, errors.Join(errs...)
	}
	return cols, nil
}

func quoteList(xs []string) string {
	q := make([]string, len(xs))
	for i, x := range xs {
		q[i] = fmt.Sprintf("%q", x)
	}
	return strings.Join(q, ", ")
}
