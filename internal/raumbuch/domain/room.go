package domain

import (
	"context"
	"errors"
	"time"
)

// Room belongs to exactly one zone.
type Room struct {
	ID        string
	ZoneID    string
	Code      string
	Number    int
	Name      string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks room invariants.
func (r Room) Validate() error {
	if r.ID == "" {
		return errors.New("room: empty id")
	}
	if r.ZoneID == "" {
		return errors.New("room: empty zone id")
	}
	if r.Name == "" {
		return errors.New("room: empty name")
	}
	return nil
}

// RoomRepository manages room persistence.
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	Get(ctx context.Context, id string) (*Room, error)
	ListByZone(ctx context.Context, zoneID string) ([]Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
	NextOrder(ctx context.Context, zoneID string) (int, error)
}
