package repository

import (
	"context"

	"github.com/hotelease/backend/internal/entity"
)

type BookingRepository interface {
	// Create inserts the booking, claiming a room of its category in the
	// same transaction when none is pre-assigned. A pre-assigned room is
	// marked occupied inside that transaction too.
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	GetByReference(ctx context.Context, reference string) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error

	// Query operations
	GetAll(ctx context.Context) ([]*entity.Booking, error)
	GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.Booking, error)
	GetUnassigned(ctx context.Context) ([]*entity.Booking, error)

	// Statistical operations
	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error)
	SumRevenue(ctx context.Context) (int64, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id int64) (*entity.Room, error)
	GetByNumber(ctx context.Context, number string) (*entity.Room, error)
	GetAll(ctx context.Context) ([]*entity.Room, error)
	GetByCategory(ctx context.Context, category entity.RoomCategory) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	CategoryExists(ctx context.Context, category entity.RoomCategory) (bool, error)

	// Availability synchronization
	SetAvailability(ctx context.Context, roomID int64, available bool) error
	ReconcileAvailability(ctx context.Context) (int64, error)

	GetOccupancyStats(ctx context.Context) (*entity.OccupancyStats, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *entity.Service) error
	GetAll(ctx context.Context) ([]*entity.Service, error)
	GetFeatured(ctx context.Context, limit int) ([]*entity.Service, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetAll(ctx context.Context) ([]*entity.Review, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.Review, error)
	GetSummary(ctx context.Context) (*entity.ReviewSummary, error)
}

type ContactRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	GetAll(ctx context.Context, unhandledOnly bool) ([]*entity.ContactMessage, error)
	MarkHandled(ctx context.Context, id int64) error
}
