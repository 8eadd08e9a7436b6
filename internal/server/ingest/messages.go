// Package ingest loads marketplace orders and stock snapshots into
// PostgreSQL from an AMQP queue. Producers publish a Batch per linked
// account; the worker upserts each batch in one transaction.
package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/server/models"
)

const (
	TypeOrders = "orders"
	TypeStocks = "stocks"
)

type Batch struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	LkID      int64          `json:"lk_id"`
	Orders    []models.Order `json:"orders,omitempty"`
	Stocks    []models.Stock `json:"stocks,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewOrdersBatch(lkID int64, orders []models.Order) *Batch {
	return &Batch{ID: uuid.NewString(), Type: TypeOrders, LkID: lkID, Orders: orders, Timestamp: time.Now()}
}

func NewStocksBatch(lkID int64, stocks []models.Stock) *Batch {
	return &Batch{ID: uuid.NewString(), Type: TypeStocks, LkID: lkID, Stocks: stocks, Timestamp: time.Now()}
}

func (b *Batch) ToJSON() ([]byte, error) {
	return json.Marshal(b)
}

// Validate checks the envelope; rows are checked by the database.
func (b *Batch) Validate() error {
	if b.LkID <= 0 {
		return fmt.Errorf("%w: lk_id is required", common.ErrValidation)
	}
	switch b.Type {
	case TypeOrders:
		for i, o := range b.Orders {
			if o.SrID == "" || o.NmID == 0 {
				return fmt.Errorf("%w: order %d needs srid and nmid", common.ErrValidation, i)
			}
		}
	case TypeStocks:
		for i, s := range b.Stocks {
			if s.NmID == 0 || s.WarehouseName == "" {
				return fmt.Errorf("%w: stock %d needs nmid and warehouse_name", common.ErrValidation, i)
			}
		}
	default:
		return fmt.Errorf("%w: unknown batch type %q", common.ErrValidation, b.Type)
	}
	return nil
}

// BatchFromJSON decodes and validates a message body.
func BatchFromJSON(data []byte) (*Batch, error) {
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
