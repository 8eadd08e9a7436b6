package services

import (
	"context"
	"database/sql"
	"math"

	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/server/models"
	"github.com/wbdash/wbdash/internal/server/repositories/repomanager"
)

// recentWindowDays bounds the window behind orders_per_day_7d.
const recentWindowDays = 7

type AnalyticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnalyticsService(db *sql.DB, m repomanager.RepositoryManager) *AnalyticsService {
	return &AnalyticsService{db: db, repomanager: m}
}

// scope drops the ids userID cannot see. An empty request stays empty.
func (s *AnalyticsService) scope(ctx context.Context, userID int64, lkIDs []int64) ([]int64, error) {
	if len(lkIDs) == 0 {
		return nil, nil
	}
	return s.repomanager.WbLks(s.db).AccessibleIDs(ctx, userID, lkIDs)
}

// OrdersChart returns one point per day of r, zero-filled, plus the range
// totals. No accessible accounts yields an empty chart.
func (s *AnalyticsService) OrdersChart(ctx context.Context, userID int64, lkIDs []int64, r daterange.Range) (*models.OrdersChart, error) {
	ids, err := s.scope(ctx, userID, lkIDs)
	if err != nil {
		return nil, err
	}
	chart := &models.OrdersChart{Data: []models.DayCount{}}
	if len(ids) == 0 {
		return chart, nil
	}

	days, err := s.repomanager.Analytics(s.db).OrdersByDay(ctx, ids, r)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int64, len(days))
	for _, d := range days {
		byDate[d.Date] = d.Count
		chart.TotalOrders += d.Count
		chart.TotalSales += d.Sales
	}
	chart.TotalSales = roundCents(chart.TotalSales)

	r.Each(func(d daterange.Date) {
		key := d.String()
		chart.Data = append(chart.Data, models.DayCount{Date: key, Count: byDate[key]})
	})
	return chart, nil
}

// Products ranks articles sold in r. OrdersPerDay7d averages the last
// min(7, r.Days()) days of the range.
func (s *AnalyticsService) Products(ctx context.Context, userID int64, lkIDs []int64, r daterange.Range) ([]models.Product, error) {
	ids, err := s.scope(ctx, userID, lkIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	span := min(recentWindowDays, r.Days())
	rows, err := s.repomanager.Analytics(s.db).Products(ctx, ids, r, r.To.AddDays(1-span))
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, len(rows))
	for i, row := range rows {
		out[i] = row.Product
		out[i].OrdersPerDay7d = roundCents(float64(row.RecentOrders) / float64(span))
	}
	return out, nil
}

func (s *AnalyticsService) Stocks(ctx context.Context, userID int64, lkIDs []int64) (int64, error) {
	ids, err := s.scope(ctx, userID, lkIDs)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.repomanager.Analytics(s.db).TotalStocks(ctx, ids)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
