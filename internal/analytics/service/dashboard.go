package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sales-analytics/internal/analytics/model"
)

var ErrUnknownView = errors.New("unknown view")

type ReportOptions struct {
	TrendMetric model.TrendMetric
	SKUSort     SKUSort
	Top         int
}

func (o ReportOptions) normalized() ReportOptions {
	if o.TrendMetric != model.MetricRevenue {
		o.TrendMetric = model.MetricUnits
	}
	if o.SKUSort != SortByRevenue {
		o.SKUSort = SortByUnits
	}
	if o.Top <= 0 {
		o.Top = 10
	}
	return o
}

// input: то, что нужно каждому представлению; считается один раз на запрос.
type input struct {
	ds        model.Dataset
	completed []model.CanonicalRow
	cancelled []model.CanonicalRow
	opt       ReportOptions
}

func newInput(ds model.Dataset, opt ReportOptions) input {
	completed, cancelled := Partition(ds.Rows)
	return input{ds: ds, completed: completed, cancelled: cancelled, opt: opt.normalized()}
}

// views: отдельные представления по имени (POST /views/{view}).
var views = map[string]func(in input) any{
	"canonical": func(in input) any { return in.ds.Rows },
	"kpis":      func(in input) any { return ComputeKPIs(in.ds.Rows, in.completed, in.cancelled) },
	"restock":   func(in input) any { return Reconcile(in.completed, in.ds.Inventory).Restock },
	"dead-stock": func(in input) any {
		return Reconcile(in.completed, in.ds.Inventory).DeadStock
	},
	"stock":          func(in input) any { return Reconcile(in.completed, in.ds.Inventory) },
	"sku-totals":     func(in input) any { return SKUTotals(in.completed, in.opt.SKUSort, 0) },
	"top-skus":       func(in input) any { return SKUTotals(in.completed, SortByUnits, in.opt.Top) },
	"sku-value":      func(in input) any { return SKUTotals(in.completed, SortByRevenue, 0) },
	"channel-mix":    func(in input) any { return ChannelMix(in.completed) },
	"cancellations":  func(in input) any { return CancellationMatrix(in.cancelled) },
	"daily-trend":    func(in input) any { return DailyTrend(in.completed, in.opt.TrendMetric) },
	"daily-averages": func(in input) any { return ComputeDailyAverages(in.completed) },
	"daily-channel":  func(in input) any { return DailyChannelMatrix(in.completed) },
}

// ViewNames: для сообщений об ошибке и документации.
func ViewNames() []string {
	out := make([]string, 0, len(views))
	for k := range views {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CheckView: есть ли представление с таким именем.
func CheckView(name string) error {
	if _, ok := views[name]; !ok {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownView, name, strings.Join(ViewNames(), ", "))
	}
	return nil
}

// View считает одно представление.
func View(ds model.Dataset, name string, opt ReportOptions) (any, error) {
	if err := CheckView(name); err != nil {
		return nil, err
	}
	return views[name](newInput(ds, opt)), nil
}

// BuildReport собирает весь дашборд. Представления не зависят друг от друга
// и ничего не меняют в ds, поэтому считаются параллельно.
func BuildReport(ctx context.Context, ds model.Dataset, opt ReportOptions) (model.Report, error) {
	in := newInput(ds, opt)
	rep := model.Report{
		Columns:     ds.Columns,
		Stats:       ds.Stats,
		TrendMetric: in.opt.TrendMetric,
	}

	g, gctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { rep.KPIs = ComputeKPIs(ds.Rows, in.completed, in.cancelled) })
	run(func() { rep.Stock = Reconcile(in.completed, ds.Inventory) })
	run(func() { rep.SKUTotals = SKUTotals(in.completed, in.opt.SKUSort, 0) })
	run(func() { rep.TopSKUs = SKUTotals(in.completed, SortByUnits, in.opt.Top) })
	run(func() { rep.SKUValue = SKUTotals(in.completed, SortByRevenue, 0) })
	run(func() { rep.ChannelMix = ChannelMix(in.completed) })
	run(func() { rep.Cancellations = CancellationMatrix(in.cancelled) })
	run(func() { rep.DailyTrend = DailyTrend(in.completed, in.opt.TrendMetric) })
	run(func() { rep.DailyAverages = ComputeDailyAverages(in.completed) })
	run(func() { rep.DailyChannel = DailyChannelMatrix(in.completed) })

	if err := g.Wait(); err != nil {
		return model.Report{}, err
	}
	return rep, nil
}
