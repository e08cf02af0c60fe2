package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// CategoryRepository is a Postgres implementation for categories.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository constructs a repository.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if r == nil || r.db == nil {
		return errors.New("category repo: nil db")
	}
	if category == nil {
		return errors.New("category repo: nil category")
	}
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO categories (id, trade_id, name, code, sort_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		category.ID, category.TradeID, category.Name, category.Code,
		category.Order, category.CreatedAt, category.UpdatedAt)
	return err
}

// Get loads a category by id.
func (r *CategoryRepository) Get(ctx context.Context, id string) (*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("category repo: nil db")
	}
	if id == "" {
		return nil, errors.New("category repo: empty id")
	}

	var category domain.Category
	err := r.db.QueryRowContext(ctx, `
SELECT id, trade_id, name, code, sort_order, created_at, updated_at
FROM categories
WHERE id = $1
LIMIT 1`, id).Scan(&category.ID, &category.TradeID, &category.Name, &category.Code,
		&category.Order, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	category.CreatedAt = category.CreatedAt.UTC()
	category.UpdatedAt = category.UpdatedAt.UTC()
	return &category, nil
}

// ListByTrade returns a trade's categories in order.
func (r *CategoryRepository) ListByTrade(ctx context.Context, tradeID string) ([]domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("category repo: nil db")
	}
	if tradeID == "" {
		return nil, errors.New("category repo: empty trade id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, trade_id, name, code, sort_order, created_at, updated_at
FROM categories
WHERE trade_id = $1
ORDER BY sort_order ASC`, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.TradeID, &category.Name, &category.Code,
			&category.Order, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		category.CreatedAt = category.CreatedAt.UTC()
		category.UpdatedAt = category.UpdatedAt.UTC()
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update writes all mutable category fields.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if r == nil || r.db == nil {
		return errors.New("category repo: nil db")
	}
	if category == nil {
		return errors.New("category repo: nil category")
	}
	category.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE categories
SET trade_id = $2, name = $3, code = $4, sort_order = $5, updated_at = $6
WHERE id = $1`,
		category.ID, category.TradeID, category.Name, category.Code, category.Order, category.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("category repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// NextOrder returns max(sort_order)+1 within the trade, 0 when empty.
func (r *CategoryRepository) NextOrder(ctx context.Context, tradeID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("category repo: nil db")
	}
	return nextOrder(ctx, r.db, `SELECT MAX(sort_order) FROM categories WHERE trade_id = $1`, tradeID)
}
