package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/hotelease/backend/internal/database/postgres"
	"github.com/hotelease/backend/internal/database/redis"
	"github.com/hotelease/backend/internal/entity"
)

// CreateRoomRequest представляет данные для добавления номера в каталог
type CreateRoomRequest struct {
	Number           string              `json:"number" binding:"required,min=1,max=10"`
	Category         entity.RoomCategory `json:"category" binding:"required"`
	Price            int                 `json:"price" binding:"required,min=1"`
	Description      string              `json:"description" binding:"max=2000"`
	MainImageURL     string              `json:"main_image_url"`
	WashroomImageURL string              `json:"washroom_image_url"`
	BalconyImageURL  string              `json:"balcony_image_url"`
	ExteriorImageURL string              `json:"exterior_image_url"`
	Amenities        []string            `json:"amenities"`
}

// UpdateRoomRequest представляет частичное обновление номера
type UpdateRoomRequest struct {
	Number           *string              `json:"number,omitempty"`
	Category         *entity.RoomCategory `json:"category,omitempty"`
	Price            *int                 `json:"price,omitempty"`
	Description      *string              `json:"description,omitempty"`
	MainImageURL     *string              `json:"main_image_url,omitempty"`
	WashroomImageURL *string              `json:"washroom_image_url,omitempty"`
	BalconyImageURL  *string              `json:"balcony_image_url,omitempty"`
	ExteriorImageURL *string              `json:"exterior_image_url,omitempty"`
	Amenities        []string             `json:"amenities,omitempty"`
}

type roomService struct {
	roomRepo  repository.RoomRepository
	cacheRepo *redis.CacheRepository
}

// NewRoomService создает новый экземпляр RoomService
func NewRoomService(roomRepo repository.RoomRepository, cacheRepo *redis.CacheRepository) RoomService {
	return &roomService{
		roomRepo:  roomRepo,
		cacheRepo: cacheRepo,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*entity.Room, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownCategory, req.Category)
	}

	room := &entity.Room{
		Number:           req.Number,
		Category:         req.Category,
		Price:            req.Price,
		Description:      req.Description,
		MainImageURL:     req.MainImageURL,
		WashroomImageURL: req.WashroomImageURL,
		BalconyImageURL:  req.BalconyImageURL,
		ExteriorImageURL: req.ExteriorImageURL,
		IsAvailable:      true,
		Amenities:        req.Amenities,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	logrus.Infof("Room created: number=%s, category=%s", room.Number, room.Category)
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if req.Number != nil {
		room.Number = *req.Number
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, fmt.Errorf("%w: %q", entity.ErrUnknownCategory, *req.Category)
		}
		room.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", entity.ErrInvalidInput)
		}
		room.Price = *req.Price
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.MainImageURL != nil {
		room.MainImageURL = *req.MainImageURL
	}
	if req.WashroomImageURL != nil {
		room.WashroomImageURL = *req.WashroomImageURL
	}
	if req.BalconyImageURL != nil {
		room.BalconyImageURL = *req.BalconyImageURL
	}
	if req.ExteriorImageURL != nil {
		room.ExteriorImageURL = *req.ExteriorImageURL
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, id int64) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (s *roomService) GetRoomByNumber(ctx context.Context, number string) (*entity.Room, error) {
	room, err := s.roomRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get room by number: %w", err)
	}
	return room, nil
}

func (s *roomService) GetAllRooms(ctx context.Context) ([]*entity.Room, error) {
	rooms, err := s.roomRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) GetRoomsByCategory(ctx context.Context, category entity.RoomCategory) ([]*entity.Room, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownCategory, category)
	}

	rooms, err := s.roomRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms by category: %w", err)
	}
	return rooms, nil
}

// GetRateCards возвращает прайс-лист для страницы бронирования.
// Таблица статична, поэтому кешируется целиком.
func (s *roomService) GetRateCards(ctx context.Context) ([]entity.RateCard, error) {
	if s.cacheRepo != nil {
		if cards, err := s.cacheRepo.GetRateCards(ctx); err == nil {
			return cards, nil
		}
	}

	cards := entity.RateCards()

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetRateCards(ctx, cards); err != nil {
			logrus.Warnf("Failed to cache rate cards: %v", err)
		}
	}

	return cards, nil
}

// GetOccupancy возвращает сводку занятости, сначала из кеша
func (s *roomService) GetOccupancy(ctx context.Context) (*entity.OccupancyStats, error) {
	if s.cacheRepo != nil {
		if stats, err := s.cacheRepo.GetOccupancy(ctx); err == nil {
			return stats, nil
		}
	}

	stats, err := s.roomRepo.GetOccupancyStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy stats: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetOccupancy(ctx, stats); err != nil {
			logrus.Warnf("Failed to cache occupancy stats: %v", err)
		}
	}

	return stats, nil
}
