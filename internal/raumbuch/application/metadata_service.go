package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// The metadata services (trades, categories, connections, install zones)
// back the admin UI's generic manager screens and share the same shape:
// validate, default the order slot, persist.

// TradeService implements trade CRUD.
type TradeService struct {
	repo domain.TradeRepository
}

func NewTradeService(repo domain.TradeRepository) (*TradeService, error) {
	if repo == nil {
		return nil, errors.New("trade service: nil repo")
	}
	return &TradeService{repo: repo}, nil
}

type CreateTradeInput struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	HGNumber  string `json:"hgNumber"`
	Order     *int   `json:"order"`
}

type UpdateTradeInput struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	HGNumber *string `json:"hgNumber"`
	Order    *int    `json:"order"`
}

func (s *TradeService) Create(ctx context.Context, input CreateTradeInput) (*domain.Trade, error) {
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
	trade := &domain.Trade{
		ID:        newID(),
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Code:      input.Code,
		HGNumber:  input.HGNumber,
		Order:     order,
	}
	if err := trade.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

func (s *TradeService) Get(ctx context.Context, id string) (*domain.Trade, error) {
	return s.repo.Get(ctx, id)
}

func (s *TradeService) ListByProject(ctx context.Context, projectID string) ([]domain.Trade, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *TradeService) Update(ctx context.Context, id string, input UpdateTradeInput) (*domain.Trade, error) {
	trade, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		trade.Name = *input.Name
	}
	if input.Code != nil {
		trade.Code = *input.Code
	}
	if input.HGNumber != nil {
		trade.HGNumber = *input.HGNumber
	}
	if input.Order != nil {
		trade.Order = *input.Order
	}
	if err := trade.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

func (s *TradeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CategoryService implements category CRUD. Categories nest under a trade.
type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) (*CategoryService, error) {
	if repo == nil {
		return nil, errors.New("category service: nil repo")
	}
	return &CategoryService{repo: repo}, nil
}

type CreateCategoryInput struct {
	TradeID string `json:"tradeId"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Order   *int   `json:"order"`
}

type UpdateCategoryInput struct {
	TradeID *string `json:"tradeId"`
	Name    *string `json:"name"`
	Code    *string `json:"code"`
	Order   *int    `json:"order"`
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		next, err := s.repo.NextOrder(ctx, input.TradeID)
		if err != nil {
			return nil, err
		}
		order = next
	}
	category := &domain.Category{
		ID:      newID(),
		TradeID: input.TradeID,
		Name:    input.Name,
		Code:    input.Code,
		Order:   order,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *CategoryService) ListByTrade(ctx context.Context, tradeID string) ([]domain.Category, error) {
	return s.repo.ListByTrade(ctx, tradeID)
}

func (s *CategoryService) Update(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.TradeID != nil {
		category.TradeID = *input.TradeID
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Code != nil {
		category.Code = *input.Code
	}
	if input.Order != nil {
		category.Order = *input.Order
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ConnectionService implements connection CRUD. Connections are unordered.
type ConnectionService struct {
	repo domain.ConnectionRepository
}

func NewConnectionService(repo domain.ConnectionRepository) (*ConnectionService, error) {
	if repo == nil {
		return nil, errors.New("connection service: nil repo")
	}
	return &ConnectionService{repo: repo}, nil
}

type CreateConnectionInput struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Voltage   string `json:"voltage"`
}

type UpdateConnectionInput struct {
	Name    *string `json:"name"`
	Code    *string `json:"code"`
	Voltage *string `json:"voltage"`
}

func (s *ConnectionService) Create(ctx context.Context, input CreateConnectionInput) (*domain.Connection, error) {
	connection := &domain.Connection{
		ID:        newID(),
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Code:      input.Code,
		Voltage:   input.Voltage,
	}
	if err := connection.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, connection); err != nil {
		return nil, err
	}
	return connection, nil
}

func (s *ConnectionService) Get(ctx context.Context, id string) (*domain.Connection, error) {
	return s.repo.Get(ctx, id)
}

func (s *ConnectionService) ListByProject(ctx context.Context, projectID string) ([]domain.Connection, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *ConnectionService) Update(ctx context.Context, id string, input UpdateConnectionInput) (*domain.Connection, error) {
	connection, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		connection.Name = *input.Name
	}
	if input.Code != nil {
		connection.Code = *input.Code
	}
	if input.Voltage != nil {
		connection.Voltage = *input.Voltage
	}
	if err := connection.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, connection); err != nil {
		return nil, err
	}
	return connection, nil
}

func (s *ConnectionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// InstallZoneService implements install-zone CRUD.
type InstallZoneService struct {
	repo domain.InstallZoneRepository
}

func NewInstallZoneService(repo domain.InstallZoneRepository) (*InstallZoneService, error) {
	if repo == nil {
		return nil, errors.New("install zone service: nil repo")
	}
	return &InstallZoneService{repo: repo}, nil
}

type CreateInstallZoneInput struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Order     *int   `json:"order"`
}

type UpdateInstallZoneInput struct {
	Name  *string `json:"name"`
	Code  *string `json:"code"`
	Order *int    `json:"order"`
}

func (s *InstallZoneService) Create(ctx context.Context, input CreateInstallZoneInput) (*domain.InstallZone, error) {
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
	installZone := &domain.InstallZone{
		ID:        newID(),
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Code:      input.Code,
		Order:     order,
	}
	if err := installZone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, installZone); err != nil {
		return nil, err
	}
	return installZone, nil
}

func (s *InstallZoneService) Get(ctx context.Context, id string) (*domain.InstallZone, error) {
	return s.repo.Get(ctx, id)
}

func (s *InstallZoneService) ListByProject(ctx context.Context, projectID string) ([]domain.InstallZone, error) {
	return s.repo.ListByProject(ctx, projectID)
}

func (s *InstallZoneService) Update(ctx context.Context, id string, input UpdateInstallZoneInput) (*domain.InstallZone, error) {
	installZone, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		installZone.Name = *input.Name
	}
	if input.Code != nil {
		installZone.Code = *input.Code
	}
	if input.Order != nil {
		installZone.Order = *input.Order
	}
	if err := installZone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, installZone); err != nil {
		return nil, err
	}
	return installZone, nil
}

func (s *InstallZoneService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
