package analytics

import (
	"context"
	"fmt"

	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) OrdersByDay(ctx context.Context, lkIDs []int64, rng daterange.Range) ([]DaySales, error) {
	query :=
		`SELECT to_char(o.date::date, 'YYYY-MM-DD') AS day, COUNT(*), COALESCE(SUM(o.finished_price), 0)::float8
		 FROM orders o
		 WHERE o.lk_id = ANY($1::bigint[])
		   AND NOT o.is_cancel
		   AND o.date::date BETWEEN $2::date AND $3::date
		 GROUP BY day
		 ORDER BY day`

	rows, err := r.db.QueryContext(ctx, query, lkIDs, rng.From.String(), rng.To.String())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]DaySales, 0)
	for rows.Next() {
		var d DaySales
		if err := rows.Scan(&d.Date, &d.Count, &d.Sales); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Products ranks articles by order count. Quantity is the current stock
// summed over warehouses of the same accounts.
func (r *PostgresRepository) Products(ctx context.Context, lkIDs []int64, rng daterange.Range, weekFrom daterange.Date) ([]ProductRow, error) {
	query :=
		`SELECT o.nmid,
		        MAX(o.supplier_article), MAX(o.brand), MAX(o.subject), MAX(o.category),
		        COUNT(*),
		        COUNT(*) FILTER (WHERE o.date::date >= $4::date),
		        COALESCE((SELECT SUM(s.quantity) FROM stocks s
		                  WHERE s.nmid = o.nmid AND s.lk_id = ANY($1::bigint[])), 0)
		 FROM orders o
		 WHERE o.lk_id = ANY($1::bigint[])
		   AND NOT o.is_cancel
		   AND o.date::date BETWEEN $2::date AND $3::date
		 GROUP BY o.nmid
		 ORDER BY COUNT(*) DESC, o.nmid`

	rows, err := r.db.QueryContext(ctx, query,
		lkIDs, rng.From.String(), rng.To.String(), weekFrom.String())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]ProductRow, 0)
	for rows.Next() {
		var p ProductRow
		err := rows.Scan(&p.NmID, &p.VendorCode, &p.Brand, &p.Title, &p.SubjectName,
			&p.Orders, &p.RecentOrders, &p.Quantity)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) TotalStocks(ctx context.Context, lkIDs []int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stocks WHERE lk_id = ANY($1::bigint[])`,
		lkIDs).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

// UpsertOrder inserts an order line or refreshes it when the marketplace
// reports a later change.
func (r *PostgresRepository) UpsertOrder(ctx context.Context, o *models.Order) error {
	query :=
		`INSERT INTO orders (lk_id, srid, nmid, date, last_change_date, warehouse_name, region_name,
		                     supplier_article, barcode, category, subject, brand, tech_size,
		                     total_price, discount_percent, finished_price, price_with_disc,
		                     is_cancel, cancel_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 ON CONFLICT (lk_id, nmid, srid) DO UPDATE SET
		     last_change_date = EXCLUDED.last_change_date,
		     warehouse_name   = EXCLUDED.warehouse_name,
		     region_name      = EXCLUDED.region_name,
		     total_price      = EXCLUDED.total_price,
		     discount_percent = EXCLUDED.discount_percent,
		     finished_price   = EXCLUDED.finished_price,
		     price_with_disc  = EXCLUDED.price_with_disc,
		     is_cancel        = EXCLUDED.is_cancel,
		     cancel_date      = EXCLUDED.cancel_date`

	_, err := r.db.ExecContext(ctx, query,
		o.LkID, o.SrID, o.NmID, o.Date, o.LastChangeDate, o.WarehouseName, o.RegionName,
		o.SupplierArticle, o.Barcode, o.Category, o.Subject, o.Brand, o.TechSize,
		o.TotalPrice, o.DiscountPercent, o.FinishedPrice, o.PriceWithDisc,
		o.IsCancel, o.CancelDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpsertStock(ctx context.Context, s *models.Stock) error {
	query :=
		`INSERT INTO stocks (lk_id, nmid, supplier_article, warehouse_name, barcode, quantity,
		                     in_way_to_client, in_way_from_client, quantity_full,
		                     category, subject, brand, tech_size, last_change_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (lk_id, nmid, supplier_article, warehouse_name) DO UPDATE SET
		     barcode            = EXCLUDED.barcode,
		     quantity           = EXCLUDED.quantity,
		     in_way_to_client   = EXCLUDED.in_way_to_client,
		     in_way_from_client = EXCLUDED.in_way_from_client,
		     quantity_full      = EXCLUDED.quantity_full,
		     last_change_date   = EXCLUDED.last_change_date`

	_, err := r.db.ExecContext(ctx, query,
		s.LkID, s.NmID, s.SupplierArticle, s.WarehouseName, s.Barcode, s.Quantity,
		s.InWayToClient, s.InWayFromClient, s.QuantityFull,
		s.Category, s.Subject, s.Brand, s.TechSize, s.LastChangeDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
