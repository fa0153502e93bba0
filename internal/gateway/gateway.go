package gateway

import (
	"context"
	"errors"
)

// Caller is the capability set gateways need from the resilient HTTP
// client. Kept minimal so tests can substitute a double.
type Caller interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, payload any) ([]byte, error)
}

var (
	ErrUserLookup    = errors.New("failed to fetch user")
	ErrProductLookup = errors.New("failed to fetch product")
	ErrStockUpdate   = errors.New("failed to update product stock")
)
