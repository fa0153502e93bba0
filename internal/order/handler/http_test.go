package handler_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/internal/order/handler"
	mocks "github.com/microshop/services/internal/order/handler/mocks"
)

func newRouter(t *testing.T) (chi.Router, *mocks.MockOrderService) {
	svc := mocks.NewMockOrderService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, svc)

	r := chi.NewRouter()
	h.Init(r)
	return r, svc
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	createdOrder := entities.Order{
		ID:     "o1",
		UserID: "u1",
		Items:  []entities.OrderItem{{ProductID: "p1", Quantity: 2, Price: 9.99}},
		Status: entities.StatusPending,
	}

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "created",
			body: `{"userId":"u1","items":[{"productId":"p1","quantity":2,"price":9.99}],"totalAmount":19.98}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(createdOrder, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"status":"pending"`,
		},
		{
			name: "user not found",
			body: `{"userId":"missing","items":[{"productId":"p1","quantity":1}]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"User not found"`,
		},
		{
			name: "product not found",
			body: `{"userId":"u1","items":[{"productId":"ghost","quantity":1}]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ProductNotFoundError{ProductID: "ghost"}).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"Product ghost not found"`,
		},
		{
			name: "insufficient stock",
			body: `{"userId":"u1","items":[{"productId":"p1","quantity":100}]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.InsufficientStockError{ProductID: "p1"}).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"Insufficient stock for product p1"`,
		},
		{
			name:         "missing items",
			body:         `{"userId":"u1","items":[]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "invalid body",
			body:         `{not json`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"invalid request body"`,
		},
		{
			name: "internal error",
			body: `{"userId":"u1","items":[{"productId":"p1","quantity":1}]}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestHTTPHandler_GetOrderByID(t *testing.T) {
	validOrder := entities.Order{ID: "o1", UserID: "u1", Status: entities.StatusPending}

	testCases := []struct {
		name         string
		orderID      string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:    "success",
			orderID: "o1",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					GetOrderByID(mock.Anything, "o1").
					Return(validOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":"o1"`,
		},
		{
			name:    "not found",
			orderID: "not-exist",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					GetOrderByID(mock.Anything, "not-exist").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:    "internal error",
			orderID: "o1",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					GetOrderByID(mock.Anything, "o1").
					Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			req := httptest.NewRequest(http.MethodGet, "/orders/"+tc.orderID, nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestHTTPHandler_GetUserOrders(t *testing.T) {
	r, svc := newRouter(t)

	orders := []entities.Order{
		{ID: "o1", UserID: "u1"},
		{ID: "o2", UserID: "u1"},
	}
	svc.EXPECT().GetOrdersByUser(mock.Anything, "u1").Return(orders, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/orders/user/u1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"o1"`)
	assert.Contains(t, rr.Body.String(), `"id":"o2"`)
}

func TestHTTPHandler_UpdateStatus(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			body: `{"status":"completed"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					UpdateStatus(mock.Anything, "o1", entities.StatusCompleted).
					Return(entities.Order{ID: "o1", Status: entities.StatusCompleted}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"completed"`,
		},
		{
			name:         "unknown status rejected",
			body:         `{"status":"shipped"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name: "not found",
			body: `{"status":"processing"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					UpdateStatus(mock.Anything, "o1", entities.StatusProcessing).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			req := httptest.NewRequest(http.MethodPatch, "/orders/o1/status", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestHTTPHandler_CancelOrder(t *testing.T) {
	testCases := []struct {
		name         string
		mockBehavior func(svc *mocks.MockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "cancelled",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CancelOrder(mock.Anything, "o1").
					Return(entities.Order{ID: "o1", Status: entities.StatusCancelled}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"cancelled"`,
		},
		{
			name: "completed order",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CancelOrder(mock.Anything, "o1").
					Return(entities.Order{}, entities.ErrOrderCompleted).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"Cannot cancel completed order"`,
		},
		{
			name: "not found",
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					CancelOrder(mock.Anything, "o1").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			tc.mockBehavior(svc)

			req := httptest.NewRequest(http.MethodPost, "/orders/o1/cancel", nil)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}
