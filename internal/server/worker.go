package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/wbdash/wbdash/internal/server/ingest"
)

// RunIngestWorker consumes order and stock batches until a shutdown signal.
func (app *App) RunIngestWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := ingest.NewClient(app.config.AMQPURL, app.config.AMQPExchange, app.config.AMQPQueue, app.logger)
	if err != nil {
		return err
	}
	defer c.Close()

	p := ingest.NewProcessor(app.db, app.repomanager, app.logger)
	app.logger.Info(ctx, "Starting ingest worker", "queue", app.config.AMQPQueue)

	if err := c.Consume(ctx, p.Handle); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// PublishFile reads a batch from a JSON file and publishes it. An id is
// assigned when the file has none.
func PublishFile(ctx context.Context, url, exchange, queue, path string) (*ingest.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	b, err := ingest.BatchFromJSON(data)
	if err != nil {
		return nil, err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now()
	}

	c, err := ingest.NewClient(url, exchange, queue, newLogger())
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return b, c.Publish(ctx, b)
}
