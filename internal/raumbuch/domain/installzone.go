package domain

import (
	"context"
	"errors"
	"time"
)

// InstallZone classifies the installation height/location of a device
// instance (wall-mounted, floor-mounted, ceiling, ...).
type InstallZone struct {
	ID        string
	ProjectID string
	Name      string
	Code      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (iz InstallZone) Validate() error {
	if iz.ID == "" {
		return errors.New("install zone: empty id")
	}
	if iz.ProjectID == "" {
		return errors.New("install zone: empty project id")
	}
	if iz.Name == "" {
		return errors.New("install zone: empty name")
	}
	return nil
}

// InstallZoneRepository manages install-zone persistence.
type InstallZoneRepository interface {
	Create(ctx context.Context, installZone *InstallZone) error
	Get(ctx context.Context, id string) (*InstallZone, error)
	ListByProject(ctx context.Context, projectID string) ([]InstallZone, error)
	Update(ctx context.Context, installZone *InstallZone) error
	Delete(ctx context.Context, id string) error
	NextOrder(ctx context.Context, projectID string) (int, error)
}
