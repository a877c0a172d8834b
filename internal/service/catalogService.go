package service

import (
	"context"
	"fmt"

	repository "github.com/hotelease/backend/internal/database/postgres"
	"github.com/hotelease/backend/internal/entity"
)

// CreateServiceRequest представляет данные гостиничной услуги
type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Icon        string `json:"icon"`
	Description string `json:"description" binding:"max=2000"`
	Price       *int   `json:"price,omitempty"`
	Featured    bool   `json:"featured"`
}

type serviceCatalog struct {
	serviceRepo repository.ServiceRepository
}

// NewServiceCatalog создает новый экземпляр ServiceCatalog
func NewServiceCatalog(serviceRepo repository.ServiceRepository) ServiceCatalog {
	return &serviceCatalog{serviceRepo: serviceRepo}
}

func (s *serviceCatalog) CreateService(ctx context.Context, req *CreateServiceRequest) (*entity.Service, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", entity.ErrInvalidInput)
	}

	svc := &entity.Service{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		Price:       req.Price,
		Featured:    req.Featured,
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return svc, nil
}

func (s *serviceCatalog) GetServices(ctx context.Context) ([]*entity.Service, error) {
	svcs, err := s.serviceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	return svcs, nil
}

// GetFeaturedServices возвращает подборку услуг для главной страницы
func (s *serviceCatalog) GetFeaturedServices(ctx context.Context, limit int) ([]*entity.Service, error) {
	if limit <= 0 {
		limit = 3
	}

	svcs, err := s.serviceRepo.GetFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured services: %w", err)
	}
	return svcs, nil
}
