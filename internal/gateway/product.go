package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/pkg/svcclient"
)

// Product is a read-only projection of a product owned by the product
// service, fetched fresh on every verification.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"isActive"`
}

type ProductGateway struct {
	logger *slog.Logger
	client Caller
}

func NewProductGateway(logger *slog.Logger, client Caller) *ProductGateway {
	return &ProductGateway{
		logger: logger.With(slog.String("gateway", "product")),
		client: client,
	}
}

// Fetch returns the product by id. A remote 404 maps to
// entities.ErrProductNotFound, everything else to ErrProductLookup.
func (g *ProductGateway) Fetch(ctx context.Context, productID string) (Product, error) {
	body, err := g.client.Get(ctx, "/products/"+productID)
	if err != nil {
		var callErr *svcclient.CallError
		if errors.As(err, &callErr) && callErr.Code == http.StatusNotFound {
			g.logger.Warn("product not found", slog.String("product_id", productID))
			return Product{}, entities.ErrProductNotFound
		}
		g.logger.Error("error fetching product", slog.String("product_id", productID), slog.Any("error", err))
		return Product{}, ErrProductLookup
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		g.logger.Error("error decoding product", slog.String("product_id", productID), slog.Any("error", err))
		return Product{}, ErrProductLookup
	}
	return product, nil
}

// IsAvailable reports whether the product is active and has at least
// quantity units in stock. Errors degrade to false, same asymmetry
// as UserGateway.IsValid.
func (g *ProductGateway) IsAvailable(ctx context.Context, productID string, quantity int) bool {
	product, err := g.Fetch(ctx, productID)
	if err != nil {
		return false
	}
	return product.IsActive && product.Stock >= quantity
}

// AdjustStock applies a signed quantity delta to the product's stock.
// Not part of the verification path.
func (g *ProductGateway) AdjustStock(ctx context.Context, productID string, quantity int) error {
	_, err := g.client.Post(ctx, fmt.Sprintf("/products/%s/stock", productID), map[string]int{"quantity": quantity})
	if err != nil {
		g.logger.Error("error updating product stock",
			slog.String("product_id", productID),
			slog.Int("quantity", quantity),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %v", ErrStockUpdate, err)
	}
	return nil
}
