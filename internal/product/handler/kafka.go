package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"

	"github.com/microshop/services/internal/config"
	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/internal/events"
	"github.com/microshop/services/pkg/utils"
)

type StockAdjuster interface {
	AdjustStock(ctx context.Context, id string, quantity int) (entities.Product, error)
}

// kafkaHandler consumes order events and applies stock deltas for
// created orders. This runs outside the order verification path: a
// verified order may still find its stock consumed only later.
type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	svc      StockAdjuster
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, svc StockAdjuster) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		if err := h.handleOrderEvent(ctx, m); err != nil {
			h.logger.Error("failed to handle event", slog.Any("error", err))
			eventsFailed.Inc()

			if err := h.writeToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			eventsDLQ.Inc()
		} else {
			eventsProcessed.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			h.logger.Error("failed to commit message", slog.Any("error", err))
			commitErrors.Inc()
		}
	}
}

func (h *kafkaHandler) handleOrderEvent(ctx context.Context, m kafka.Message) error {
	var event events.OrderEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid event data: %w", err)
	}

	if event.Type != events.TypeOrderCreated {
		return nil
	}

	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}

	for _, item := range event.Items {
		fn := func() error {
			_, err := h.svc.AdjustStock(ctx, item.ProductID, -item.Quantity)
			return err
		}
		err := utils.Retry(cfg, fn, entities.ErrProductNotFound, entities.ErrInsufficientStock)
		if err != nil {
			return fmt.Errorf("failed to adjust stock for product %s: %w", item.ProductID, err)
		}

		h.logger.Debug("stock adjusted",
			slog.String("order_id", event.OrderID),
			slog.String("product_id", item.ProductID),
			slog.Int("quantity", -item.Quantity),
		)
	}

	return nil
}

func (h *kafkaHandler) writeToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
