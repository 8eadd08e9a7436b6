package services

import (
	"context"

	"github.com/wbdash/wbdash/internal/client/client"
	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	OrdersChartEndpoint = "/analytics/orders-chart"
	ProductsEndpoint    = "/analytics/products"
	StocksEndpoint      = "/analytics/stocks"
)

// Fetcher is implemented by client.ScopedFetcher.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, opts *client.RequestOptions, params map[string]any, out any) error
}

func rangeParams(r daterange.Range) map[string]any {
	return map[string]any{"date_from": r.From, "date_to": r.To}
}

// PeriodStats compares the selected range with the equal-length range
// right before it.
type PeriodStats struct {
	Current       daterange.Range
	Past          daterange.Range
	CurrentOrders int64
	PastOrders    int64
	CurrentSales  float64
	PastSales     float64
	TotalStocks   int64
}

func (p PeriodStats) OrdersChange() int64  { return p.CurrentOrders - p.PastOrders }
func (p PeriodStats) SalesChange() float64 { return p.CurrentSales - p.PastSales }

type PeriodStatsView struct {
	f      Fetcher
	log    logging.Logger
	loader Loader[PeriodStats]
}

func NewPeriodStatsView(f Fetcher, log logging.Logger) *PeriodStatsView {
	return &PeriodStatsView{f: f, log: log}
}

// Load fetches the current period, the past period and stock on hand
// concurrently. Any failure fails the whole view.
func (v *PeriodStatsView) Load(ctx context.Context, r daterange.Range) (State[PeriodStats], error) {
	return v.loader.Load(ctx, func(ctx context.Context) (PeriodStats, error) {
		stats := PeriodStats{Current: r, Past: r.Previous()}
		var cur, past models.OrdersChart
		var stocks models.Stocks

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return v.f.Fetch(gctx, OrdersChartEndpoint, nil, rangeParams(stats.Current), &cur)
		})
		g.Go(func() error {
			return v.f.Fetch(gctx, OrdersChartEndpoint, nil, rangeParams(stats.Past), &past)
		})
		g.Go(func() error {
			return v.f.Fetch(gctx, StocksEndpoint, nil, nil, &stocks)
		})
		if err := g.Wait(); err != nil {
			v.log.Warn(ctx, "period stats fetch failed", "range", r.String(), "error", err)
			return PeriodStats{}, err
		}

		stats.CurrentOrders, stats.CurrentSales = cur.TotalOrders, cur.TotalSales
		stats.PastOrders, stats.PastSales = past.TotalOrders, past.TotalSales
		stats.TotalStocks = stocks.TotalStocks
		return stats, nil
	})
}

func (v *PeriodStatsView) State() State[PeriodStats] { return v.loader.State() }

type ProductsView struct {
	f      Fetcher
	loader Loader[[]models.Product]
}

func NewProductsView(f Fetcher) *ProductsView { return &ProductsView{f: f} }

func (v *ProductsView) Load(ctx context.Context, r daterange.Range) (State[[]models.Product], error) {
	return v.loader.Load(ctx, func(ctx context.Context) ([]models.Product, error) {
		var out models.Products
		if err := v.f.Fetch(ctx, ProductsEndpoint, nil, rangeParams(r), &out); err != nil {
			return nil, err
		}
		return out.Products, nil
	})
}

func (v *ProductsView) State() State[[]models.Product] { return v.loader.State() }

type OrdersChartView struct {
	f      Fetcher
	loader Loader[models.OrdersChart]
}

func NewOrdersChartView(f Fetcher) *OrdersChartView { return &OrdersChartView{f: f} }

func (v *OrdersChartView) Load(ctx context.Context, r daterange.Range) (State[models.OrdersChart], error) {
	return v.loader.Load(ctx, func(ctx context.Context) (models.OrdersChart, error) {
		var out models.OrdersChart
		err := v.f.Fetch(ctx, OrdersChartEndpoint, nil, rangeParams(r), &out)
		return out, err
	})
}

func (v *OrdersChartView) State() State[models.OrdersChart] { return v.loader.State() }
