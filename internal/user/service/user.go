package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/microshop/services/internal/entities"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u entities.User) (entities.User, error)
	GetUserByID(ctx context.Context, id string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	UpdateUser(ctx context.Context, u entities.User) (entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(logger *slog.Logger, repo UserRepo) *userService {
	return &userService{
		logger: logger.With(slog.String("service", "user")),
		repo:   repo,
	}
}

func (s *userService) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	user.ID = uuid.NewString()
	user.IsActive = true

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return entities.User{}, err
	}

	s.logger.Info("user created", slog.String("user_id", created.ID))
	return created, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, user entities.User) (entities.User, error) {
	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return entities.User{}, err
	}

	s.logger.Info("user updated", slog.String("user_id", updated.ID))
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}
