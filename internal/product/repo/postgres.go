package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/microshop/services/internal/entities"
)

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

const productColumns = "id, name, description, price, stock, category, is_active, created_at, updated_at"

func (r *postgresRepo) CreateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	query, args := r.qb.Insert("products").
		Columns("id", "name", "description", "price", "stock", "category", "is_active").
		Values(p.ID, p.Name, nullString(p.Description), p.Price, p.Stock, nullString(p.Category), p.IsActive).
		Suffix("RETURNING " + productColumns).
		MustSql()

	var row Product
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return entities.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	query, args := r.qb.Select(productColumns).
		From("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	var row Product
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	query, args := r.qb.Select(productColumns).
		From("products").
		OrderBy("created_at DESC").
		MustSql()

	return r.selectProducts(ctx, query, args...)
}

func (r *postgresRepo) ListProductsByCategory(ctx context.Context, category string) ([]entities.Product, error) {
	query, args := r.qb.Select(productColumns).
		From("products").
		Where(sq.Eq{"category": category}).
		OrderBy("created_at DESC").
		MustSql()

	return r.selectProducts(ctx, query, args...)
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p entities.Product) (entities.Product, error) {
	query, args := r.qb.Update("products").
		Set("name", p.Name).
		Set("description", nullString(p.Description)).
		Set("price", p.Price).
		Set("stock", p.Stock).
		Set("category", nullString(p.Category)).
		Set("is_active", p.IsActive).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + productColumns).
		MustSql()

	var row Product
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) UpdateStock(ctx context.Context, id string, stock int) (entities.Product, error) {
	query, args := r.qb.Update("products").
		Set("stock", stock).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + productColumns).
		MustSql()

	var row Product
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to update stock: %w", err)
	}
	return ProductToEntity(row), nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	query, args := r.qb.Delete("products").
		Where(sq.Eq{"id": id}).
		MustSql()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepo) selectProducts(ctx context.Context, query string, args ...any) ([]entities.Product, error) {
	var rows []Product
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	products := make([]entities.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, ProductToEntity(row))
	}
	return products, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
