package repo

import (
	"time"

	"github.com/microshop/services/internal/entities"
)

type Order struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Item struct {
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Quantity  int     `db:"quantity"`
	Price     float64 `db:"price"`
}

func OrderToEntity(o Order, items []Item) entities.Order {
	entityItems := make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		entityItems = append(entityItems, entities.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return entities.Order{
		ID:          o.ID,
		UserID:      o.UserID,
		Items:       entityItems,
		TotalAmount: o.TotalAmount,
		Status:      entities.OrderStatus(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
