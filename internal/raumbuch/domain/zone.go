package domain

import (
	"context"
	"errors"
	"time"
)

// Zone is a floor or major area grouping of rooms within a project.
type Zone struct {
	ID        string
	ProjectID string
	Code      string
	Name      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks zone invariants.
func (z Zone) Validate() error {
	if z.ID == "" {
		return errors.New("zone: empty id")
	}
	if z.ProjectID == "" {
		return errors.New("zone: empty project id")
	}
	if z.Name == "" {
		return errors.New("zone: empty name")
	}
	return nil
}

// ZoneRepository manages zone persistence.
type ZoneRepository interface {
	Create(ctx context.Context, zone *Zone) error
	Get(ctx context.Context, id string) (*Zone, error)
	ListByProject(ctx context.Context, projectID string) ([]Zone, error)
	Update(ctx context.Context, zone *Zone) error
	Delete(ctx context.Context, id string) error
	// NextOrder returns max(order)+1 within the project, 0 when empty.
	NextOrder(ctx context.Context, projectID string) (int, error)
}
