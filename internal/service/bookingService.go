package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/hotelease/backend/internal/database/postgres"
	"github.com/hotelease/backend/internal/database/redis"
	"github.com/hotelease/backend/internal/entity"
)

// referenceRetryLimit ограничивает число попыток сгенерировать уникальный
// номер брони при конфликте в базе
const referenceRetryLimit = 3

// CreateBookingRequest представляет данные гостевой формы бронирования
type CreateBookingRequest struct {
	FullName        string              `json:"full_name" binding:"required,min=1,max=100"`
	CNIC            string              `json:"cnic" binding:"required,min=13,max=15"`
	Address         string              `json:"address" binding:"required"`
	Email           string              `json:"email" binding:"omitempty,email"`
	PhoneNumber     string              `json:"phone_number" binding:"max=20"`
	Category        entity.RoomCategory `json:"category" binding:"required"`
	RoomNumber      string              `json:"room_number,omitempty"`
	Nights          int                 `json:"nights" binding:"required"`
	AirportPickDrop bool                `json:"airport_pick_drop"`
	Notes           string              `json:"notes" binding:"max=1000"`
}

// UpdateBookingRequest представляет частичное обновление бронирования.
// Поле reference обновлению не подлежит.
type UpdateBookingRequest struct {
	FullName        *string               `json:"full_name,omitempty"`
	CNIC            *string               `json:"cnic,omitempty"`
	Address         *string               `json:"address,omitempty"`
	Email           *string               `json:"email,omitempty"`
	PhoneNumber     *string               `json:"phone_number,omitempty"`
	Category        *entity.RoomCategory  `json:"category,omitempty"`
	Nights          *int                  `json:"nights,omitempty"`
	AirportPickDrop *bool                 `json:"airport_pick_drop,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	Status          *entity.BookingStatus `json:"status,omitempty"`
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	cacheRepo   *redis.CacheRepository
	notifier    ConciergeNotifier
}

// NewBookingService создает новый экземпляр BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	cacheRepo *redis.CacheRepository,
	notifier ConciergeNotifier,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		cacheRepo:   cacheRepo,
		notifier:    notifier,
	}
}

// CreateBooking создает новое бронирование: назначает номер брони, а
// подбор комнаты и расчет стоимости выполняются в одной транзакции вставки
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error) {
	booking := &entity.Booking{
		FullName:        req.FullName,
		CNIC:            req.CNIC,
		Address:         req.Address,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Category:        req.Category,
		Nights:          req.Nights,
		AirportPickDrop: req.AirportPickDrop,
		Notes:           req.Notes,
		Status:          entity.BookingStatusPending,
	}

	// Validation happens before any persistence attempt
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	registered, err := s.roomRepo.CategoryExists(ctx, booking.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to check room category: %w", err)
	}
	if !registered {
		return nil, fmt.Errorf("%w: no rooms registered for %q", entity.ErrUnknownCategory, booking.Category)
	}

	// Explicit room assignment wins over allocation
	if req.RoomNumber != "" {
		room, err := s.roomRepo.GetByNumber(ctx, req.RoomNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve requested room: %w", err)
		}
		booking.Room = room
		booking.RoomID = &room.ID
	}

	// Создание брони — одна транзакция: подбор комнаты, расчет стоимости
	// и вставка фиксируются вместе, откат не оставляет занятых комнат
	if err := s.persistNew(ctx, booking); err != nil {
		return nil, err
	}

	logrus.Infof("Booking created: reference=%s, category=%s, nights=%d, total=%d",
		booking.Reference, booking.Category, booking.Nights, booking.TotalPrice)

	if booking.RoomID == nil {
		logrus.Warnf("No available %s room, booking %s proceeds unassigned",
			booking.Category, booking.Reference)
		s.flagForFollowUp(booking)
	} else {
		s.invalidateOccupancy(ctx)
	}

	return booking, nil
}

// persistNew inserts the booking, regenerating the reference on a
// uniqueness conflict. The reference is assigned here exactly once; no
// later persist path rewrites it. A conflicting attempt is fully rolled
// back, so any room it claimed is reset before the next try.
func (s *bookingService) persistNew(ctx context.Context, booking *entity.Booking) error {
	preassignedID := booking.RoomID
	preassignedRoom := booking.Room

	var err error
	for attempt := 1; attempt <= referenceRetryLimit; attempt++ {
		booking.RoomID = preassignedID
		booking.Room = preassignedRoom
		booking.Reference = entity.NewReference()
		err = s.bookingRepo.Create(ctx, booking)
		if !errors.Is(err, entity.ErrReferenceConflict) {
			break
		}
		logrus.Warnf("Booking reference collision on attempt %d/%d, regenerating",
			attempt, referenceRetryLimit)
	}

	if errors.Is(err, entity.ErrReferenceConflict) {
		return entity.ErrReferenceRetriesExceeded
	}
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// syncAvailability выполняет шаг синхронизатора: комната занята, пока
// бронь в статусе pending или confirmed, и свободна после отмены.
// Запускается только после фиксации записи брони; ошибка здесь не
// откатывает бронь, а оставляется идемпотентному реконсайлеру.
func (s *bookingService) syncAvailability(ctx context.Context, booking *entity.Booking) {
	if booking.RoomID == nil {
		return
	}

	available := !booking.Status.OccupiesRoom()
	if err := s.roomRepo.SetAvailability(ctx, *booking.RoomID, available); err != nil {
		logrus.Errorf("Availability sync failed for room %d (booking %s): %v; reconciler will repair",
			*booking.RoomID, booking.Reference, err)
		return
	}

	s.invalidateOccupancy(ctx)
}

// invalidateOccupancy сбрасывает кэш занятости после изменения доступности
func (s *bookingService) invalidateOccupancy(ctx context.Context) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.InvalidateOccupancy(ctx); err != nil {
		logrus.Warnf("Failed to invalidate occupancy cache: %v", err)
	}
}

// flagForFollowUp оповещает консьержа о брони без назначенной комнаты
func (s *bookingService) flagForFollowUp(booking *entity.Booking) {
	if s.notifier == nil {
		return
	}

	text := fmt.Sprintf(
		"Booking %s needs manual room assignment\nCategory: %s\nGuest: %s\nNights: %d",
		booking.Reference, booking.Category.Label(), booking.FullName, booking.Nights,
	)
	if err := s.notifier.Notify(text); err != nil {
		logrus.Errorf("Failed to send follow-up notification for booking %s: %v", booking.Reference, err)
	}
}

// UpdateBooking применяет изменения и пересчитывает стоимость. Стоимость
// пересчитывается при каждом сохранении независимо от изменившихся полей,
// доступность комнаты синхронизируется после каждого сохранения.
func (s *bookingService) UpdateBooking(ctx context.Context, id int64, req *UpdateBookingRequest) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if req.FullName != nil {
		booking.FullName = *req.FullName
	}
	if req.CNIC != nil {
		booking.CNIC = *req.CNIC
	}
	if req.Address != nil {
		booking.Address = *req.Address
	}
	if req.Email != nil {
		booking.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		booking.PhoneNumber = *req.PhoneNumber
	}
	if req.Category != nil {
		booking.Category = *req.Category
	}
	if req.Nights != nil {
		booking.Nights = *req.Nights
	}
	if req.AirportPickDrop != nil {
		booking.AirportPickDrop = *req.AirportPickDrop
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != booking.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", entity.ErrInvalidInput, *req.Status)
		}
		if !booking.Status.CanTransitionTo(*req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", entity.ErrInvalidStatusTransition, booking.Status, *req.Status)
		}
		booking.Status = *req.Status
	}

	booking.TotalPrice = booking.CalculateTotal()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.syncAvailability(ctx, booking)

	return booking, nil
}

// ConfirmBooking переводит бронь из pending в confirmed
func (s *bookingService) ConfirmBooking(ctx context.Context, id int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Status.CanTransitionTo(entity.BookingStatusConfirmed) {
		return fmt.Errorf("%w: %s -> confirmed", entity.ErrInvalidStatusTransition, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, entity.BookingStatusConfirmed); err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	logrus.Infof("Booking confirmed: reference=%s", booking.Reference)

	booking.Status = entity.BookingStatusConfirmed
	s.syncAvailability(ctx, booking)

	return nil
}

// CancelBooking отменяет бронь и освобождает связанную комнату.
// cancelled — терминальный статус: повторная отмена отклоняется.
func (s *bookingService) CancelBooking(ctx context.Context, id int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return entity.ErrBookingAlreadyCancelled
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("%w: %s -> cancelled", entity.ErrInvalidStatusTransition, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	logrus.Infof("Booking cancelled: reference=%s", booking.Reference)

	booking.Status = entity.BookingStatusCancelled
	s.syncAvailability(ctx, booking)

	return nil
}

// GetBooking возвращает бронирование по внутреннему идентификатору
func (s *bookingService) GetBooking(ctx context.Context, id int64) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetBookingByReference возвращает бронирование по номеру брони
func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]*entity.Booking, error) {
	bookings, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetBookingsByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidInput, status)
	}

	bookings, err := s.bookingRepo.GetByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by status: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetRecentBookings(ctx context.Context, limit int) ([]*entity.Booking, error) {
	if limit <= 0 {
		limit = 10
	}

	bookings, err := s.bookingRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) GetUnassignedBookings(ctx context.Context) ([]*entity.Booking, error) {
	bookings, err := s.bookingRepo.GetUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unassigned bookings: %w", err)
	}
	return bookings, nil
}

// GetDashboardStats собирает сводку для панели персонала
func (s *bookingService) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	occupancy, err := s.roomRepo.GetOccupancyStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy stats: %w", err)
	}

	byStatus, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	revenue, err := s.bookingRepo.SumRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	unassigned, err := s.bookingRepo.GetUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unassigned bookings: %w", err)
	}

	recent, err := s.bookingRepo.GetRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	return &entity.DashboardStats{
		Occupancy:        *occupancy,
		TotalBookings:    total,
		BookingsByStatus: byStatus,
		UnassignedCount:  int64(len(unassigned)),
		Revenue:          revenue,
		RecentBookings:   recent,
	}, nil
}

// ReconcileAvailability перезаписывает флаги доступности из таблицы
// бронирований. Безопасно запускать многократно.
func (s *bookingService) ReconcileAvailability(ctx context.Context) (int64, error) {
	corrected, err := s.roomRepo.ReconcileAvailability(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile availability: %w", err)
	}

	if corrected > 0 {
		logrus.Warnf("Availability reconciler corrected %d room(s)", corrected)
		if s.cacheRepo != nil {
			if err := s.cacheRepo.InvalidateOccupancy(ctx); err != nil {
				logrus.Warnf("Failed to invalidate occupancy cache: %v", err)
			}
		}
	}

	return corrected, nil
}
