package domain

import (
	"context"
	"errors"
	"time"
)

// Project is the root of the room-book tree. Deleting a project cascades
// to all zones, trades, connections, install zones and devices below it.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks project invariants.
func (p Project) Validate() error {
	if p.ID == "" {
		return errors.New("project: empty id")
	}
	if p.Name == "" {
		return errors.New("project: empty name")
	}
	return nil
}

// ProjectCounts summarizes a project's children for list views.
type ProjectCounts struct {
	Zones   int
	Trades  int
	Devices int
}

// ProjectRepository manages project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context, id string) (ProjectCounts, error)
}
