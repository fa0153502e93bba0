package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/microshop/services/internal/entities"
	"github.com/microshop/services/pkg/svcclient"
)

// User is a read-only projection of a user owned by the user service.
// It is fetched fresh on every verification, never cached here.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

type UserGateway struct {
	logger *slog.Logger
	client Caller
}

func NewUserGateway(logger *slog.Logger, client Caller) *UserGateway {
	return &UserGateway{
		logger: logger.With(slog.String("gateway", "user")),
		client: client,
	}
}

// Fetch returns the user by id. A remote 404 maps to
// entities.ErrUserNotFound, everything else to ErrUserLookup.
func (g *UserGateway) Fetch(ctx context.Context, userID string) (User, error) {
	body, err := g.client.Get(ctx, "/users/"+userID)
	if err != nil {
		var callErr *svcclient.CallError
		if errors.As(err, &callErr) && callErr.Code == http.StatusNotFound {
			g.logger.Warn("user not found", slog.String("user_id", userID))
			return User{}, entities.ErrUserNotFound
		}
		g.logger.Error("error fetching user", slog.String("user_id", userID), slog.Any("error", err))
		return User{}, ErrUserLookup
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		g.logger.Error("error decoding user", slog.String("user_id", userID), slog.Any("error", err))
		return User{}, ErrUserLookup
	}
	return user, nil
}

// IsValid never returns an error: any failure, not-found included,
// degrades to false. Callers that need to distinguish use Fetch.
func (g *UserGateway) IsValid(ctx context.Context, userID string) bool {
	user, err := g.Fetch(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsActive
}
