package domain

import (
	"context"
	"errors"
	"time"
)

// Trade is a discipline/craft (electrical, lighting, KNX, ...).
type Trade struct {
	ID        string
	ProjectID string
	Name      string
	Code      string
	HGNumber  string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Trade) Validate() error {
	if t.ID == "" {
		return errors.New("trade: empty id")
	}
	if t.ProjectID == "" {
		return errors.New("trade: empty project id")
	}
	if t.Name == "" {
		return errors.New("trade: empty name")
	}
	return nil
}

// TradeRepository manages trade persistence.
type TradeRepository interface {
	Create(ctx context.Context, trade *Trade) error
	Get(ctx context.Context, id string) (*Trade, error)
	ListByProject(ctx context.Context, projectID string) ([]Trade, error)
	Update(ctx context.Context, trade *Trade) error
	Delete(ctx context.Context, id string) error
	NextOrder(ctx context.Context, projectID string) (int, error)
}
