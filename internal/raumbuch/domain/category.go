package domain

import (
	"context"
	"errors"
	"time"
)

// Category is a sub-classification nested one level under a trade.
// TradeID is mandatory: every category belongs to exactly one trade.
type Category struct {
	ID        string
	TradeID   string
	Name      string
	Code      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) Validate() error {
	if c.ID == "" {
		return errors.New("category: empty id")
	}
	if c.TradeID == "" {
		return errors.New("category: empty trade id")
	}
	if c.Name == "" {
		return errors.New("category: empty name")
	}
	return nil
}

// CategoryRepository manages category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Get(ctx context.Context, id string) (*Category, error)
	ListByTrade(ctx context.Context, tradeID string) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	NextOrder(ctx context.Context, tradeID string) (int, error)
}
