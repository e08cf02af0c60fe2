package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// ZoneService implements zone CRUD.
type ZoneService struct {
	repo domain.ZoneRepository
}

// NewZoneService constructs a service.
func NewZoneService(repo domain.ZoneRepository) (*ZoneService, error) {
	if repo == nil {
		return nil, errors.New("zone service: nil repo")
	}
	return &ZoneService{repo: repo}, nil
}

// CreateZoneInput carries the fields of a new zone. A nil Order defaults
// to the next free slot within the project.
type CreateZoneInput struct {
	ProjectID string `json:"projectId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Order     *int   `json:"order"`
}

// UpdateZoneInput carries a partial update; nil fields keep prior values.
type UpdateZoneInput struct {
	Code  *string `json:"code"`
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

// Create validates and persists a new zone.
func (s *ZoneService) Create(ctx context.Context, input CreateZoneInput) (*domain.Zone, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		next, err := s.repo.NextOrder(ctx, input.ProjectID)
		if err != nil {
			return nil, err
		}
		order = next
	}
	zone := &domain.Zone{
		ID:        newID(),
		ProjectID: input.ProjectID,
		Code:      input.Code,
		Name:      input.Name,
		Order:     order,
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Get loads a zone by id.
func (s *ZoneService) Get(ctx context.Context, id string) (*domain.Zone, error) {
	return s.repo.Get(ctx, id)
}

// ListByProject returns a project's zones in order.
func (s *ZoneService) ListByProject(ctx context.Context, projectID string) ([]domain.Zone, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Update applies a partial update with full-field write semantics.
func (s *ZoneService) Update(ctx context.Context, id string, input UpdateZoneInput) (*domain.Zone, error) {
	zone, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Code != nil {
		zone.Code = *input.Code
	}
	if input.Name != nil {
		zone.Name = *input.Name
	}
	if input.Order != nil {
		zone.Order = *input.Order
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// Delete removes a zone and its rooms.
func (s *ZoneService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
