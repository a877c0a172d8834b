package service

import (
	"context"

	"github.com/hotelease/backend/internal/entity"
)

// BookingService определяет интерфейс для операций с бронированиями
type BookingService interface {
	// Основные операции
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entity.Booking, error)
	UpdateBooking(ctx context.Context, id int64, req *UpdateBookingRequest) (*entity.Booking, error)
	ConfirmBooking(ctx context.Context, id int64) error
	CancelBooking(ctx context.Context, id int64) error
	GetBooking(ctx context.Context, id int64) (*entity.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*entity.Booking, error)

	// Списки и панель персонала
	GetAllBookings(ctx context.Context) ([]*entity.Booking, error)
	GetBookingsByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	GetRecentBookings(ctx context.Context, limit int) ([]*entity.Booking, error)
	GetUnassignedBookings(ctx context.Context) ([]*entity.Booking, error)
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)

	// ReconcileAvailability re-runs the availability synchronizer over the
	// whole room inventory. Idempotent; the recovery path when a sync step
	// failed after a booking write was already committed.
	ReconcileAvailability(ctx context.Context) (int64, error)
}

// RoomService covers the room catalog and the read-only rate card surface
type RoomService interface {
	CreateRoom(ctx context.Context, req *CreateRoomRequest) (*entity.Room, error)
	UpdateRoom(ctx context.Context, id int64, req *UpdateRoomRequest) (*entity.Room, error)
	GetRoom(ctx context.Context, id int64) (*entity.Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*entity.Room, error)
	GetAllRooms(ctx context.Context) ([]*entity.Room, error)
	GetRoomsByCategory(ctx context.Context, category entity.RoomCategory) ([]*entity.Room, error)

	GetRateCards(ctx context.Context) ([]entity.RateCard, error)
	GetOccupancy(ctx context.Context) (*entity.OccupancyStats, error)
}

type ReviewService interface {
	SubmitReview(ctx context.Context, req *SubmitReviewRequest) (*entity.Review, error)
	GetAllReviews(ctx context.Context) ([]*entity.Review, error)
	GetRecentReviews(ctx context.Context, limit int) ([]*entity.Review, error)
	GetReviewSummary(ctx context.Context) (*entity.ReviewSummary, error)
}

type ContactService interface {
	SubmitMessage(ctx context.Context, req *SubmitMessageRequest) (*entity.ContactMessage, error)
	GetMessages(ctx context.Context, unhandledOnly bool) ([]*entity.ContactMessage, error)
	MarkHandled(ctx context.Context, id int64) error
}

// ServiceCatalog exposes the hotel amenity listing
type ServiceCatalog interface {
	CreateService(ctx context.Context, req *CreateServiceRequest) (*entity.Service, error)
	GetServices(ctx context.Context) ([]*entity.Service, error)
	GetFeaturedServices(ctx context.Context, limit int) ([]*entity.Service, error)
}

// ConciergeNotifier доставляет оповещения персоналу (например, в Telegram).
// Реализация может отсутствовать — сервисы обязаны это учитывать.
type ConciergeNotifier interface {
	Notify(text string) error
}
