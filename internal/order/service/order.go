package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/internal/events"
	"github.com/microshop/services/internal/gateway"
	"github.com/microshop/services/pkg/trm"
	"github.com/microshop/services/pkg/utils"
)

type OrderRepo interface {
	InsertOrder(ctx context.Context, o entities.Order) error
	InsertItems(ctx context.Context, orderID string, items []entities.OrderItem) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (entities.Order, error)
}

type UserGateway interface {
	Fetch(ctx context.Context, userID string) (gateway.User, error)
}

type ProductGateway interface {
	Fetch(ctx context.Context, productID string) (gateway.Product, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.OrderEvent) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	users     UserGateway
	products  ProductGateway
	cache     Cache
	publisher EventPublisher
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	users UserGateway,
	products ProductGateway,
	cache Cache,
	publisher EventPublisher,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		users:     users,
		products:  products,
		cache:     cache,
		publisher: publisher,
	}
}

// CreateOrder verifies the order against the user and product services,
// then persists it with status pending. Verification is strictly
// sequential: the user first, then each line item in input order. A
// rejected order leaves nothing behind and issues no compensation
// against either remote service.
func (s *orderService) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	// Any failure of the existence probe, not-found or transient,
	// rejects the order the same way.
	if _, err := s.users.Fetch(ctx, order.UserID); err != nil {
		s.logger.Warn("order rejected: user not found",
			slog.String("user_id", order.UserID),
			slog.Any("error", err),
		)
		return entities.Order{}, entities.ErrUserNotFound
	}

	for _, item := range order.Items {
		product, err := s.products.Fetch(ctx, item.ProductID)
		if err != nil {
			s.logger.Warn("order rejected: product not found",
				slog.String("product_id", item.ProductID),
				slog.Any("error", err),
			)
			return entities.Order{}, entities.ProductNotFoundError{ProductID: item.ProductID}
		}
		if product.Stock < item.Quantity {
			s.logger.Warn("order rejected: insufficient stock",
				slog.String("product_id", item.ProductID),
				slog.Int("stock", product.Stock),
				slog.Int("quantity", item.Quantity),
			)
			return entities.Order{}, entities.InsufficientStockError{ProductID: item.ProductID}
		}
	}

	order.ID = uuid.NewString()
	order.Status = entities.StatusPending
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertOrder(ctx, order); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, order.ID, order.Items)
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	s.publish(ctx, events.TypeOrderCreated, order)

	s.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)
	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if data, ok := s.cache.Get(orderID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal cached order", slog.String("order_id", orderID), slog.Any("error", err))
			return entities.Order{}, err
		}
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}
	if err := utils.Retry(cfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	s.cacheOrder(order)
	return order, nil
}

func (s *orderService) GetOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// UpdateStatus sets the order's status unconditionally; any transition
// is permitted here, including pending straight to completed.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (entities.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Delete(orderID)
	s.publish(ctx, events.TypeOrderStatusChanged, order)

	s.logger.Info("order status updated",
		slog.String("order_id", orderID),
		slog.String("status", string(status)),
	)
	return order, nil
}

// CancelOrder is the one guarded transition: a completed order cannot
// be cancelled. Cancelling from any other status succeeds, cancelling
// an already cancelled order included.
func (s *orderService) CancelOrder(ctx context.Context, orderID string) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if order.Status == entities.StatusCompleted {
		return entities.Order{}, entities.ErrOrderCompleted
	}

	cancelled, err := s.repo.UpdateStatus(ctx, orderID, entities.StatusCancelled)
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Delete(orderID)
	s.publish(ctx, events.TypeOrderStatusChanged, cancelled)

	s.logger.Info("order cancelled", slog.String("order_id", orderID))
	return cancelled, nil
}

// WarmUpCache preloads the most recent orders.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to warm up cache: %w", err)
	}

	for _, order := range orders {
		s.cacheOrder(order)
	}

	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func (s *orderService) cacheOrder(order entities.Order) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", order.ID), slog.Any("error", err))
		return
	}
	s.cache.Set(order.ID, data)
}

// publish is best-effort: event delivery failures are logged and never
// fail the operation that produced them.
func (s *orderService) publish(ctx context.Context, eventType string, order entities.Order) {
	items := make([]events.OrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, events.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	event := events.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		Items:       items,
		TotalAmount: order.TotalAmount,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish order event",
			slog.String("type", eventType),
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}
}
