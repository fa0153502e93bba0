package events

// Order lifecycle events exchanged over Kafka. Published by the order
// service, consumed by the product service to apply stock deltas.

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type OrderEvent struct {
	Type        string      `json:"type" validate:"required"`
	OrderID     string      `json:"orderId" validate:"required"`
	UserID      string      `json:"userId,omitempty"`
	Status      string      `json:"status,omitempty"`
	Items       []OrderItem `json:"items,omitempty" validate:"dive"`
	TotalAmount float64     `json:"totalAmount,omitempty"`
}
