package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/microshop/services/internal/entities"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) CreateUser(ctx context.Context, u entities.User) (entities.User, error) {
	query, args := r.qb.Insert("users").
		Columns("id", "name", "email", "password", "is_active").
		Values(u.ID, u.Name, u.Email, u.Password, u.IsActive).
		Suffix("RETURNING id, name, email, password, is_active, created_at, updated_at").
		MustSql()

	var row User
	err := r.db.GetContext(ctx, &row, query, args...)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return entities.User{}, entities.ErrEmailTaken
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return UserToEntity(row), nil
}

func (r *postgresRepo) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	query, args := r.qb.Select("id", "name", "email", "password", "is_active", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		MustSql()

	var row User
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return UserToEntity(row), nil
}

func (r *postgresRepo) ListUsers(ctx context.Context) ([]entities.User, error) {
	query, args := r.qb.Select("id", "name", "email", "password", "is_active", "created_at", "updated_at").
		From("users").
		OrderBy("created_at DESC").
		MustSql()

	var rows []User
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, UserToEntity(row))
	}
	return users, nil
}

func (r *postgresRepo) UpdateUser(ctx context.Context, u entities.User) (entities.User, error) {
	query, args := r.qb.Update("users").
		Set("name", u.Name).
		Set("email", u.Email).
		Set("password", u.Password).
		Set("is_active", u.IsActive).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING id, name, email, password, is_active, created_at, updated_at").
		MustSql()

	var row User
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return entities.User{}, entities.ErrEmailTaken
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return UserToEntity(row), nil
}

func (r *postgresRepo) DeleteUser(ctx context.Context, id string) error {
	query, args := r.qb.Delete("users").
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}
