// Package analytics reads and writes the orders and stocks tables that back
// the dashboard's charts and product table.
package analytics

import (
	"context"

	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/server/models"
)

// DaySales is one calendar day of non-cancelled orders.
type DaySales struct {
	Date  string
	Count int64
	Sales float64
}

type Repository interface {
	// OrdersByDay returns only days that have orders, ordered by date.
	OrdersByDay(ctx context.Context, lkIDs []int64, r daterange.Range) ([]DaySales, error)
	// Products aggregates orders per article; weekFrom bounds the recent
	// window used for the per-day rate.
	Products(ctx context.Context, lkIDs []int64, r daterange.Range, weekFrom daterange.Date) ([]ProductRow, error)
	TotalStocks(ctx context.Context, lkIDs []int64) (int64, error)
	UpsertOrder(ctx context.Context, o *models.Order) error
	UpsertStock(ctx context.Context, s *models.Stock) error
}

// ProductRow is a product with the raw order count of the recent window.
type ProductRow struct {
	models.Product
	RecentOrders int64
}
