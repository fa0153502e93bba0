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
	"github.com/microshop/services/internal/user/service"
	mocks "github.com/microshop/services/internal/user/service/mocks"
)

func TestUserService_CreateUser(t *testing.T) {
	testCases := []struct {
		name         string
		user         entities.User
		mockBehavior func(repo *mocks.MockUserRepo)
		wantErr      error
	}{
		{
			name: "OK",
			user: entities.User{Name: "Alice", Email: "alice@example.com"},
			mockBehavior: func(repo *mocks.MockUserRepo) {
				repo.EXPECT().
					CreateUser(mock.Anything, mock.Anything).
					RunAndReturn(func(_ context.Context, u entities.User) (entities.User, error) {
						return u, nil
					}).Once()
			},
		},
		{
			name: "email taken",
			user: entities.User{Name: "Alice", Email: "alice@example.com"},
			mockBehavior: func(repo *mocks.MockUserRepo) {
				repo.EXPECT().
					CreateUser(mock.Anything, mock.Anything).
					Return(entities.User{}, entities.ErrEmailTaken).Once()
			},
			wantErr: entities.ErrEmailTaken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepo(t)
			tc.mockBehavior(repo)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			svc := service.NewUserService(logger, repo)

			got, err := svc.CreateUser(context.Background(), tc.user)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.IsActive)
			assert.Equal(t, tc.user.Email, got.Email)
		})
	}
}

func TestUserService_GetUserByID(t *testing.T) {
	repo := mocks.NewMockUserRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewUserService(logger, repo)

	user := entities.User{ID: "u1", Name: "Alice", IsActive: true}
	repo.EXPECT().GetUserByID(mock.Anything, "u1").Return(user, nil).Once()
	repo.EXPECT().GetUserByID(mock.Anything, "missing").
		Return(entities.User{}, entities.ErrUserNotFound).Once()

	got, err := svc.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = svc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := mocks.NewMockUserRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewUserService(logger, repo)

	repo.EXPECT().DeleteUser(mock.Anything, "u1").Return(nil).Once()
	repo.EXPECT().DeleteUser(mock.Anything, "missing").Return(entities.ErrUserNotFound).Once()

	assert.NoError(t, svc.DeleteUser(context.Background(), "u1"))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), "missing"), entities.ErrUserNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	repo := mocks.NewMockUserRepo(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewUserService(logger, repo)

	updated := entities.User{ID: "u1", Name: "Alice Updated", IsActive: true}
	repo.EXPECT().UpdateUser(mock.Anything, mock.Anything).Return(updated, nil).Once()

	got, err := svc.UpdateUser(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	repo.EXPECT().UpdateUser(mock.Anything, mock.Anything).
		Return(entities.User{}, errors.New("db error")).Once()
	_, err = svc.UpdateUser(context.Background(), updated)
	assert.Error(t, err)
}
