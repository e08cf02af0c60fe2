package domain

import (
	"context"
	"errors"
	"time"
)

// Connection is a supply/connection type (e.g. a voltage class).
// Connections carry no order field.
type Connection struct {
	ID        string
	ProjectID string
	Name      string
	Code      string
	Voltage   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Connection) Validate() error {
	if c.ID == "" {
		return errors.New("connection: empty id")
	}
	if c.ProjectID == "" {
		return errors.New("connection: empty project id")
	}
	if c.Name == "" {
		return errors.New("connection: empty name")
	}
	return nil
}

// ConnectionRepository manages connection persistence.
type ConnectionRepository interface {
	Create(ctx context.Context, connection *Connection) error
	Get(ctx context.Context, id string) (*Connection, error)
	ListByProject(ctx context.Context, projectID string) ([]Connection, error)
	Update(ctx context.Context, connection *Connection) error
	Delete(ctx context.Context, id string) error
}
