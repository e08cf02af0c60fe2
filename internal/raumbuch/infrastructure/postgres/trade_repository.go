package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// TradeRepository is a Postgres implementation for trades.
type TradeRepository struct {
	db DBTX
}

// NewTradeRepository constructs a repository.
func NewTradeRepository(db DBTX) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a trade.
func (r *TradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	if r == nil || r.db == nil {
		return errors.New("trade repo: nil db")
	}
	if trade == nil {
		return errors.New("trade repo: nil trade")
	}
	now := time.Now().UTC()
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = now
	}
	trade.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO trades (id, project_id, name, code, hg_number, sort_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		trade.ID, trade.ProjectID, trade.Name, trade.Code, nullIfEmpty(trade.HGNumber),
		trade.Order, trade.CreatedAt, trade.UpdatedAt)
	return err
}

// Get loads a trade by id.
func (r *TradeRepository) Get(ctx context.Context, id string) (*domain.Trade, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("trade repo: nil db")
	}
	if id == "" {
		return nil, errors.New("trade repo: empty id")
	}

	var (
		trade    domain.Trade
		hgNumber sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, project_id, name, code, hg_number, sort_order, created_at, updated_at
FROM trades
WHERE id = $1
LIMIT 1`, id).Scan(&trade.ID, &trade.ProjectID, &trade.Name, &trade.Code, &hgNumber,
		&trade.Order, &trade.CreatedAt, &trade.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	trade.HGNumber = hgNumber.String
	trade.CreatedAt = trade.CreatedAt.UTC()
	trade.UpdatedAt = trade.UpdatedAt.UTC()
	return &trade, nil
}

// ListByProject returns a project's trades in order.
func (r *TradeRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Trade, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("trade repo: nil db")
	}
	if projectID == "" {
		return nil, errors.New("trade repo: empty project id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, name, code, hg_number, sort_order, created_at, updated_at
FROM trades
WHERE project_id = $1
ORDER BY sort_order ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var (
			trade    domain.Trade
			hgNumber sql.NullString
		)
		if err := rows.Scan(&trade.ID, &trade.ProjectID, &trade.Name, &trade.Code, &hgNumber,
			&trade.Order, &trade.CreatedAt, &trade.UpdatedAt); err != nil {
			return nil, err
		}
		trade.HGNumber = hgNumber.String
		trade.CreatedAt = trade.CreatedAt.UTC()
		trade.UpdatedAt = trade.UpdatedAt.UTC()
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

// Update writes all mutable trade fields.
func (r *TradeRepository) Update(ctx context.Context, trade *domain.Trade) error {
	if r == nil || r.db == nil {
		return errors.New("trade repo: nil db")
	}
	if trade == nil {
		return errors.New("trade repo: nil trade")
	}
	trade.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE trades
SET name = $2, code = $3, hg_number = $4, sort_order = $5, updated_at = $6
WHERE id = $1`,
		trade.ID, trade.Name, trade.Code, nullIfEmpty(trade.HGNumber), trade.Order, trade.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a trade; its categories cascade.
func (r *TradeRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("trade repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// NextOrder returns max(sort_order)+1 within the project, 0 when empty.
func (r *TradeRepository) NextOrder(ctx context.Context, projectID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("trade repo: nil db")
	}
	return nextOrder(ctx, r.db, `SELECT MAX(sort_order) FROM trades WHERE project_id = $1`, projectID)
}
