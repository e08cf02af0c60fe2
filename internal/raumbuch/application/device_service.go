package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// DeviceService implements catalog-device CRUD.
type DeviceService struct {
	repo domain.DeviceRepository
}

// NewDeviceService constructs a service.
func NewDeviceService(repo domain.DeviceRepository) (*DeviceService, error) {
	if repo == nil {
		return nil, errors.New("device service: nil repo")
	}
	return &DeviceService{repo: repo}, nil
}

// CreateDeviceInput carries the fields of a new catalog device.
type CreateDeviceInput struct {
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	TradeID     string `json:"tradeId"`
	CategoryID  string `json:"categoryId"`
}

// UpdateDeviceInput carries a partial update; nil fields keep prior values.
type UpdateDeviceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Code        *string `json:"code"`
	TradeID     *string `json:"tradeId"`
	CategoryID  *string `json:"categoryId"`
}

// Create validates and persists a new device.
func (s *DeviceService) Create(ctx context.Context, input CreateDeviceInput) (*domain.Device, error) {
	device := &domain.Device{
		ID:          newID(),
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		Code:        input.Code,
		TradeID:     input.TradeID,
		CategoryID:  input.CategoryID,
	}
	if err := device.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// Get loads a device by id.
func (s *DeviceService) Get(ctx context.Context, id string) (*domain.Device, error) {
	return s.repo.Get(ctx, id)
}

// ListByProject returns a project's device catalog.
func (s *DeviceService) ListByProject(ctx context.Context, projectID string) ([]domain.Device, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Update applies a partial update with full-field write semantics.
func (s *DeviceService) Update(ctx context.Context, id string, input UpdateDeviceInput) (*domain.Device, error) {
	device, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		device.Name = *input.Name
	}
	if input.Description != nil {
		device.Description = *input.Description
	}
	if input.Code != nil {
		device.Code = *input.Code
	}
	if input.TradeID != nil {
		device.TradeID = *input.TradeID
	}
	if input.CategoryID != nil {
		device.CategoryID = *input.CategoryID
	}
	if err := device.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// Delete removes a device from the catalog.
func (s *DeviceService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
