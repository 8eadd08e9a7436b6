package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/logging"
	"github.com/wbdash/wbdash/internal/server/repositories/repomanager"
)

// Processor upserts batches. Rows inherit the batch's lk_id.
type Processor struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProcessor(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *Processor {
	return &Processor{db: db, repomanager: m, logger: l.With("module", "ingest")}
}

// Handle writes b in one transaction. An unknown account yields
// common.ErrorNotFound.
func (p *Processor) Handle(ctx context.Context, b *Batch) error {
	if _, err := p.repomanager.WbLks(p.db).Get(ctx, b.LkID); err != nil {
		return fmt.Errorf("lk %d: %w", b.LkID, err)
	}

	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repomanager.Analytics(tx)
		for i := range b.Orders {
			o := &b.Orders[i]
			o.LkID = b.LkID
			if err := repo.UpsertOrder(ctx, o); err != nil {
				return fmt.Errorf("order %s: %w", o.SrID, err)
			}
		}
		for i := range b.Stocks {
			s := &b.Stocks[i]
			s.LkID = b.LkID
			if err := repo.UpsertStock(ctx, s); err != nil {
				return fmt.Errorf("stock %d/%s: %w", s.NmID, s.WarehouseName, err)
			}
		}
		p.logger.Debug(ctx, "batch written", "id", b.ID, "orders", len(b.Orders), "stocks", len(b.Stocks))
		return nil
	})
}
