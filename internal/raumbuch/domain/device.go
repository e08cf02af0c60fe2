package domain

import (
	"context"
	"errors"
	"time"
)

// Device is a catalog entry reusable across rooms. TradeID and CategoryID
// are optional links; empty string means unset.
type Device struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Code        string
	TradeID     string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks device invariants.
func (d Device) Validate() error {
	if d.ID == "" {
		return errors.New("device: empty id")
	}
	if d.ProjectID == "" {
		return errors.New("device: empty project id")
	}
	if d.Name == "" {
		return errors.New("device: empty name")
	}
	return nil
}

// DeviceRepository manages device persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *Device) error
	Get(ctx context.Context, id string) (*Device, error)
	ListByProject(ctx context.Context, projectID string) ([]Device, error)
	Update(ctx context.Context, device *Device) error
	Delete(ctx context.Context, id string) error
}
