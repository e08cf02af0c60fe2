package domain

import (
	"context"
	"errors"
	"time"
)

// RoomDevice is one concrete placement of a device in a room, carrying all
// per-instance wiring and classification metadata. This is the line item a
// room book actually lists. All reference ids except RoomID are optional.
type RoomDevice struct {
	ID            string
	RoomID        string
	DeviceID      string
	Designation   string
	Code          string
	TotalCode     string
	TradeID       string
	CategoryID    string
	ConnectionID  string
	InstallZoneID string
	CableType     string
	Target        string
	Quantity      int
	Order         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks room-device invariants.
func (rd RoomDevice) Validate() error {
	if rd.ID == "" {
		return errors.New("room device: empty id")
	}
	if rd.RoomID == "" {
		return errors.New("room device: empty room id")
	}
	if rd.Designation == "" {
		return errors.New("room device: empty designation")
	}
	if rd.Quantity < 1 {
		return errors.New("room device: quantity must be at least 1")
	}
	return nil
}

// RoomDeviceRepository manages room-device persistence.
type RoomDeviceRepository interface {
	Create(ctx context.Context, roomDevice *RoomDevice) error
	Get(ctx context.Context, id string) (*RoomDevice, error)
	ListByRoom(ctx context.Context, roomID string) ([]RoomDevice, error)
	Update(ctx context.Context, roomDevice *RoomDevice) error
	Delete(ctx context.Context, id string) error
	NextOrder(ctx context.Context, roomID string) (int, error)
}
