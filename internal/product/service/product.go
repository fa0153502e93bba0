package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/microshop/services/internal/entities"
)

type ProductRepo interface {
	CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]entities.Product, error)
	UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error)
	UpdateStock(ctx context.Context, id string, stock int) (entities.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	logger *slog.Logger
	repo   ProductRepo
}

func NewProductService(logger *slog.Logger, repo ProductRepo) *productService {
	return &productService{
		logger: logger.With(slog.String("service", "product")),
		repo:   repo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, product entities.Product) (entities.Product, error) {
	product.ID = uuid.NewString()
	product.IsActive = true

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return entities.Product{}, err
	}

	s.logger.Info("product created", slog.String("product_id", created.ID))
	return created, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productService) ListProductsByCategory(ctx context.Context, category string) ([]entities.Product, error) {
	return s.repo.ListProductsByCategory(ctx, category)
}

func (s *productService) UpdateProduct(ctx context.Context, product entities.Product) (entities.Product, error) {
	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return entities.Product{}, err
	}

	s.logger.Info("product updated", slog.String("product_id", updated.ID))
	return updated, nil
}

// AdjustStock applies a signed delta to the product's stock, rejecting
// adjustments that would take it below zero. Read-then-write without an
// optimistic check: a concurrent adjustment may be overwritten.
func (s *productService) AdjustStock(ctx context.Context, id string, quantity int) (entities.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return entities.Product{}, err
	}

	if product.Stock+quantity < 0 {
		return entities.Product{}, entities.ErrInsufficientStock
	}

	updated, err := s.repo.UpdateStock(ctx, id, product.Stock+quantity)
	if err != nil {
		return entities.Product{}, err
	}

	s.logger.Info("stock updated",
		slog.String("product_id", id),
		slog.Int("quantity", quantity),
		slog.Int("stock", updated.Stock),
	)
	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", slog.String("product_id", id))
	return nil
}
