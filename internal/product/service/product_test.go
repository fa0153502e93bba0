package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/internal/product/service"
	mocks "github.com/microshop/services/internal/product/service/mocks"
)

func TestProductService_CreateProduct(t *testing.T) {
	repo := mocks.NewMockProductRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewProductService(logger, repo)

	repo.EXPECT().
		CreateProduct(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, p entities.Product) (entities.Product, error) {
			return p, nil
		}).Once()

	got, err := svc.CreateProduct(context.Background(), entities.Product{Name: "Widget", Price: 9.99, Stock: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.True(t, got.IsActive)
	assert.Equal(t, 10, got.Stock)
}

func TestProductService_AdjustStock(t *testing.T) {
	type MockBehavior func(repo *mocks.MockProductRepo)

	testCases := []struct {
		name         string
		quantity     int
		mockBehavior MockBehavior
		wantErr      error
		wantStock    int
	}{
		{
			name:     "decrement",
			quantity: -3,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().GetProductByID(mock.Anything, "p1").
					Return(entities.Product{ID: "p1", Stock: 5}, nil).Once()
				repo.EXPECT().UpdateStock(mock.Anything, "p1", 2).
					Return(entities.Product{ID: "p1", Stock: 2}, nil).Once()
			},
			wantStock: 2,
		},
		{
			name:     "increment",
			quantity: 4,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().GetProductByID(mock.Anything, "p1").
					Return(entities.Product{ID: "p1", Stock: 5}, nil).Once()
				repo.EXPECT().UpdateStock(mock.Anything, "p1", 9).
					Return(entities.Product{ID: "p1", Stock: 9}, nil).Once()
			},
			wantStock: 9,
		},
		{
			// draining to exactly zero is allowed
			name:     "drain to zero",
			quantity: -5,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().GetProductByID(mock.Anything, "p1").
					Return(entities.Product{ID: "p1", Stock: 5}, nil).Once()
				repo.EXPECT().UpdateStock(mock.Anything, "p1", 0).
					Return(entities.Product{ID: "p1", Stock: 0}, nil).Once()
			},
			wantStock: 0,
		},
		{
			name:     "below zero rejected",
			quantity: -6,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().GetProductByID(mock.Anything, "p1").
					Return(entities.Product{ID: "p1", Stock: 5}, nil).Once()
			},
			wantErr: entities.ErrInsufficientStock,
		},
		{
			name:     "product not found",
			quantity: -1,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().GetProductByID(mock.Anything, "p1").
					Return(entities.Product{}, entities.ErrProductNotFound).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mocks.NewMockProductRepo(t)
			tc.mockBehavior(repo)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			svc := service.NewProductService(logger, repo)

			got, err := svc.AdjustStock(context.Background(), "p1", tc.quantity)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStock, got.Stock)
		})
	}
}

func TestProductService_ListProductsByCategory(t *testing.T) {
	repo := mocks.NewMockProductRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewProductService(logger, repo)

	products := []entities.Product{
		{ID: "p1", Category: "tools"},
		{ID: "p2", Category: "tools"},
	}
	repo.EXPECT().ListProductsByCategory(mock.Anything, "tools").Return(products, nil).Once()

	got, err := svc.ListProductsByCategory(context.Background(), "tools")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductService_DeleteProduct(t *testing.T) {
	repo := mocks.NewMockProductRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewProductService(logger, repo)

	repo.EXPECT().DeleteProduct(mock.Anything, "p1").Return(nil).Once()
	repo.EXPECT().DeleteProduct(mock.Anything, "missing").
		Return(entities.ErrProductNotFound).Once()

	assert.NoError(t, svc.DeleteProduct(context.Background(), "p1"))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), "missing"), entities.ErrProductNotFound)
}

func TestProductService_UpdateProduct(t *testing.T) {
	repo := mocks.NewMockProductRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewProductService(logger, repo)

	updated := entities.Product{ID: "p1", Name: "Widget v2", Price: 12.50}
	repo.EXPECT().UpdateProduct(mock.Anything, mock.Anything).Return(updated, nil).Once()

	got, err := svc.UpdateProduct(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	repo.EXPECT().UpdateProduct(mock.Anything, mock.Anything).
		Return(entities.Product{}, errors.New("db error")).Once()
	_, err = svc.UpdateProduct(context.Background(), updated)
	assert.Error(t, err)
}
