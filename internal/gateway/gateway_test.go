package gateway_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/internal/gateway"
	"github.com/microshop/services/pkg/svcclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaller(t *testing.T, handler http.Handler) (gateway.Caller, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := svcclient.New(logger, svcclient.Config{
		BaseURL:    srv.URL,
		Timeout:    time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	return client, srv.Close
}

func TestUserGateway_Fetch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/u1", r.URL.Path)
			w.Write([]byte(`{"id":"u1","name":"Alice","email":"alice@example.com","isActive":true}`))
		}))
		defer closeSrv()

		user, err := gateway.NewUserGateway(logger, client).Fetch(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.True(t, user.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer closeSrv()

		_, err := gateway.NewUserGateway(logger, client).Fetch(context.Background(), "missing")
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("upstream failure", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer closeSrv()

		_, err := gateway.NewUserGateway(logger, client).Fetch(context.Background(), "u1")
		assert.ErrorIs(t, err, gateway.ErrUserLookup)
	})
}

func TestUserGateway_IsValid(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testCases := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
	}{
		{
			name: "active user",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":"u1","isActive":true}`))
			},
			want: true,
		},
		{
			name: "inactive user",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":"u1","isActive":false}`))
			},
			want: false,
		},
		{
			name: "not found swallows error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: false,
		},
		{
			name: "upstream failure swallows error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, closeSrv := newCaller(t, tc.handler)
			defer closeSrv()

			got := gateway.NewUserGateway(logger, client).IsValid(context.Background(), "u1")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProductGateway_Fetch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/p1", r.URL.Path)
			w.Write([]byte(`{"id":"p1","name":"Widget","price":9.99,"stock":5,"isActive":true}`))
		}))
		defer closeSrv()

		product, err := gateway.NewProductGateway(logger, client).Fetch(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, 5, product.Stock)
		assert.True(t, product.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer closeSrv()

		_, err := gateway.NewProductGateway(logger, client).Fetch(context.Background(), "missing")
		assert.ErrorIs(t, err, entities.ErrProductNotFound)
	})
}

func TestProductGateway_IsAvailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testCases := []struct {
		name     string
		body     string
		status   int
		quantity int
		want     bool
	}{
		{name: "in stock", body: `{"id":"p1","stock":5,"isActive":true}`, status: 200, quantity: 2, want: true},
		{name: "exact stock", body: `{"id":"p1","stock":2,"isActive":true}`, status: 200, quantity: 2, want: true},
		{name: "insufficient stock", body: `{"id":"p1","stock":1,"isActive":true}`, status: 200, quantity: 2, want: false},
		{name: "inactive product", body: `{"id":"p1","stock":5,"isActive":false}`, status: 200, quantity: 2, want: false},
		{name: "not found", body: ``, status: 404, quantity: 2, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer closeSrv()

			got := gateway.NewProductGateway(logger, client).
				IsAvailable(context.Background(), "p1", tc.quantity)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProductGateway_AdjustStock(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/products/p1/stock", r.URL.Path)

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"quantity":-3}`, string(body))

			w.Write([]byte(`{"id":"p1","stock":2}`))
		}))
		defer closeSrv()

		err := gateway.NewProductGateway(logger, client).AdjustStock(context.Background(), "p1", -3)
		assert.NoError(t, err)
	})

	t.Run("failure", func(t *testing.T) {
		client, closeSrv := newCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"insufficient stock"}`))
		}))
		defer closeSrv()

		err := gateway.NewProductGateway(logger, client).AdjustStock(context.Background(), "p1", -10)
		assert.ErrorIs(t, err, gateway.ErrStockUpdate)
	})
}
