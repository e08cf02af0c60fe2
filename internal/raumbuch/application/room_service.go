package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// RoomService implements room CRUD.
type RoomService struct {
	repo domain.RoomRepository
}

// NewRoomService constructs a service.
func NewRoomService(repo domain.RoomRepository) (*RoomService, error) {
	if repo == nil {
		return nil, errors.New("room service: nil repo")
	}
	return &RoomService{repo: repo}, nil
}

// CreateRoomInput carries the fields of a new room.
type CreateRoomInput struct {
	ZoneID string `json:"zoneId"`
	Code   string `json:"code"`
	Number int    `json:"number"`
	Name   string `json:"name"`
	Order  *int   `json:"order"`
}

// UpdateRoomInput carries a partial update; nil fields keep prior values.
type UpdateRoomInput struct {
	Code   *string `json:"code"`
	Number *int    `json:"number"`
	Name   *string `json:"name"`
	Order  *int    `json:"order"`
}

// Create validates and persists a new room.
func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		next, err := s.repo.NextOrder(ctx, input.ZoneID)
		if err != nil {
			return nil, err
		}
		order = next
	}
	room := &domain.Room{
		ID:     newID(),
		ZoneID: input.ZoneID,
		Code:   input.Code,
		Number: input.Number,
		Name:   input.Name,
		Order:  order,
	}
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Get loads a room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.Get(ctx, id)
}

// ListByZone returns a zone's rooms in order.
func (s *RoomService) ListByZone(ctx context.Context, zoneID string) ([]domain.Room, error) {
	return s.repo.ListByZone(ctx, zoneID)
}

// Update applies a partial update with full-field write semantics.
func (s *RoomService) Update(ctx context.Context, id string, input UpdateRoomInput) (*domain.Room, error) {
	room, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Code != nil {
		room.Code = *input.Code
	}
	if input.Number != nil {
		room.Number = *input.Number
	}
	if input.Name != nil {
		room.Name = *input.Name
	}
	if input.Order != nil {
		room.Order = *input.Order
	}
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room and its placements.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
