package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/logging"
)

const publishTimeout = 5 * time.Second

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       logging.Logger
}

// NewClient dials the broker and declares a durable direct exchange with
// one queue bound under its own name.
func NewClient(url, exchangeName, queueName string, l logging.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       l.With("module", "ingest_amqp"),
	}

	if err := c.setup(); err != nil {
		c.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return c, nil
}

func (c *Client) setup() error {
	if err := c.channel.ExchangeDeclare(c.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := c.channel.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	// One batch in flight per worker; a batch is a whole transaction.
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	return nil
}

func (c *Client) Publish(ctx context.Context, b *Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}
	body, err := b.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(ctx, c.exchangeName, c.queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    b.ID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}

	c.logger.Info(ctx, "published batch", "id", b.ID, "type", b.Type, "lk_id", b.LkID)
	return nil
}

// Handler processes one batch. Errors wrapping common.ErrValidation or
// common.ErrorNotFound are permanent: the message is dropped instead of
// requeued.
type Handler func(ctx context.Context, b *Batch) error

type outcome int

const (
	ack outcome = iota
	drop
	requeue
)

// acknowledger is the part of amqp091.Delivery the consumer needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Client) handle(ctx context.Context, body []byte, h Handler) outcome {
	b, err := BatchFromJSON(body)
	if err != nil {
		c.logger.Error(ctx, "rejecting malformed batch", "error", err)
		return drop
	}

	if err := h(ctx, b); err != nil {
		if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrorNotFound) {
			c.logger.Error(ctx, "dropping batch", "error", err, "id", b.ID)
			return drop
		}
		c.logger.Error(ctx, "batch failed, requeueing", "error", err, "id", b.ID)
		return requeue
	}

	c.logger.Info(ctx, "processed batch", "id", b.ID, "type", b.Type, "lk_id", b.LkID)
	return ack
}

func settle(d acknowledger, o outcome) error {
	switch o {
	case ack:
		return d.Ack(false)
	case drop:
		return d.Nack(false, false)
	default:
		return d.Nack(false, true)
	}
}

// Consume blocks until ctx is cancelled or the delivery channel closes.
func (c *Client) Consume(ctx context.Context, h Handler) error {
	msgs, err := c.channel.ConsumeWithContext(ctx, c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.Info(ctx, "started consuming", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info(ctx, "stopping consumption", "reason", ctx.Err())
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			if err := settle(&d, c.handle(ctx, d.Body, h)); err != nil {
				c.logger.Warn(ctx, "settle delivery", "error", err)
			}
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
