package svcclient_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/microshop/services/pkg/svcclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, baseURL string, maxRetries int) *svcclient.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return svcclient.New(logger, svcclient.Config{
		BaseURL:    baseURL,
		Timeout:    time.Second,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	})
}

func TestClient_Get_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u1", r.URL.Path)
		w.Write([]byte(`{"id":"u1"}`))
	}))
	defer srv.Close()

	body, err := newClient(t, srv.URL, 3).Get(context.Background(), "/users/u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1"}`, string(body))
}

func TestClient_Get_TransientFailureThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"u1"}`))
	}))
	defer srv.Close()

	body, err := newClient(t, srv.URL, 3).Get(context.Background(), "/users/u1")
	require.NoError(t, err)

	// result is indistinguishable from a first-attempt success
	assert.JSONEq(t, `{"id":"u1"}`, string(body))
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClient_Get_ExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"upstream down"}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, 2).Get(context.Background(), "/users/u1")
	require.Error(t, err)

	var callErr *svcclient.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusServiceUnavailable, callErr.Code)
	assert.Equal(t, "upstream down", callErr.Message)
	// initial attempt plus maxRetries resubmissions
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClient_Get_NotFound(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"user not found"}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, 2).Get(context.Background(), "/users/missing")

	var callErr *svcclient.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusNotFound, callErr.Code)
	assert.Equal(t, "Resource not found", callErr.Message)
	// retries are uniform across statuses, 404 included
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClient_Get_NoMessageInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, 1).Get(context.Background(), "/users/u1")

	var callErr *svcclient.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusBadGateway, callErr.Code)
	assert.Equal(t, "Service request failed", callErr.Message)
}

func TestClient_Get_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newClient(t, srv.URL, 1).Get(context.Background(), "/users/u1")

	var callErr *svcclient.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusInternalServerError, callErr.Code)
	assert.Equal(t, "Unknown error occurred", callErr.Message)
}

func TestClient_Post(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"quantity":-2}`, string(body))

			w.Write([]byte(`{"stock":3}`))
		}))
		defer srv.Close()

		body, err := newClient(t, srv.URL, 1).
			Post(context.Background(), "/products/p1/stock", map[string]int{"quantity": -2})
		require.NoError(t, err)
		assert.JSONEq(t, `{"stock":3}`, string(body))
	})

	t.Run("404 is not special-cased", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"product not found"}`))
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL, 1).
			Post(context.Background(), "/products/p1/stock", map[string]int{"quantity": 1})

		var callErr *svcclient.CallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, http.StatusNotFound, callErr.Code)
		assert.Equal(t, "product not found", callErr.Message)
	})
}
