package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// RoomDeviceService implements room-device placement CRUD.
type RoomDeviceService struct {
	repo domain.RoomDeviceRepository
}

// NewRoomDeviceService constructs a service.
func NewRoomDeviceService(repo domain.RoomDeviceRepository) (*RoomDeviceService, error) {
	if repo == nil {
		return nil, errors.New("room device service: nil repo")
	}
	return &RoomDeviceService{repo: repo}, nil
}

// CreateRoomDeviceInput carries the fields of a new placement.
// Quantity defaults to 1, Order to the next free slot within the room.
type CreateRoomDeviceInput struct {
	RoomID        string `json:"roomId"`
	DeviceID      string `json:"deviceId"`
	Designation   string `json:"designation"`
	Code          string `json:"code"`
	TotalCode     string `json:"totalCode"`
	TradeID       string `json:"tradeId"`
	CategoryID    string `json:"categoryId"`
	ConnectionID  string `json:"connectionId"`
	InstallZoneID string `json:"installZoneId"`
	CableType     string `json:"cableType"`
	Target        string `json:"target"`
	Quantity      int    `json:"quantity"`
	Order         *int   `json:"order"`
}

// UpdateRoomDeviceInput carries a partial update; nil fields keep prior values.
type UpdateRoomDeviceInput struct {
	DeviceID      *string `json:"deviceId"`
	Designation   *string `json:"designation"`
	Code          *string `json:"code"`
	TotalCode     *string `json:"totalCode"`
	TradeID       *string `json:"tradeId"`
	CategoryID    *string `json:"categoryId"`
	ConnectionID  *string `json:"connectionId"`
	InstallZoneID *string `json:"installZoneId"`
	CableType     *string `json:"cableType"`
	Target        *string `json:"target"`
	Quantity      *int    `json:"quantity"`
	Order         *int    `json:"order"`
}

// Create validates and persists a new placement.
func (s *RoomDeviceService) Create(ctx context.Context, input CreateRoomDeviceInput) (*domain.RoomDevice, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		next, err := s.repo.NextOrder(ctx, input.RoomID)
		if err != nil {
			return nil, err
		}
		order = next
	}
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	roomDevice := &domain.RoomDevice{
		ID:            newID(),
		RoomID:        input.RoomID,
		DeviceID:      input.DeviceID,
		Designation:   input.Designation,
		Code:          input.Code,
		TotalCode:     input.TotalCode,
		TradeID:       input.TradeID,
		CategoryID:    input.CategoryID,
		ConnectionID:  input.ConnectionID,
		InstallZoneID: input.InstallZoneID,
		CableType:     input.CableType,
		Target:        input.Target,
		Quantity:      quantity,
		Order:         order,
	}
	if err := roomDevice.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, roomDevice); err != nil {
		return nil, err
	}
	return roomDevice, nil
}

// Get loads a placement by id.
func (s *RoomDeviceService) Get(ctx context.Context, id string) (*domain.RoomDevice, error) {
	return s.repo.Get(ctx, id)
}

// ListByRoom returns a room's placements in order.
func (s *RoomDeviceService) ListByRoom(ctx context.Context, roomID string) ([]domain.RoomDevice, error) {
	return s.repo.ListByRoom(ctx, roomID)
}

// Update applies a partial update with full-field write semantics.
func (s *RoomDeviceService) Update(ctx context.Context, id string, input UpdateRoomDeviceInput) (*domain.RoomDevice, error) {
	roomDevice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.DeviceID != nil {
		roomDevice.DeviceID = *input.DeviceID
	}
	if input.Designation != nil {
		roomDevice.Designation = *input.Designation
	}
	if input.Code != nil {
		roomDevice.Code = *input.Code
	}
	if input.TotalCode != nil {
		roomDevice.TotalCode = *input.TotalCode
	}
	if input.TradeID != nil {
		roomDevice.TradeID = *input.TradeID
	}
	if input.CategoryID != nil {
		roomDevice.CategoryID = *input.CategoryID
	}
	if input.ConnectionID != nil {
		roomDevice.ConnectionID = *input.ConnectionID
	}
	if input.InstallZoneID != nil {
		roomDevice.InstallZoneID = *input.InstallZoneID
	}
	if input.CableType != nil {
		roomDevice.CableType = *input.CableType
	}
	if input.Target != nil {
		roomDevice.Target = *input.Target
	}
	if input.Quantity != nil {
		roomDevice.Quantity = *input.Quantity
	}
	if input.Order != nil {
		roomDevice.Order = *input.Order
	}
	if err := roomDevice.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, roomDevice); err != nil {
		return nil, err
	}
	return roomDevice, nil
}

// Delete removes a placement.
func (s *RoomDeviceService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
