package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hotelease/backend/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `
	b.id, b.reference, b.full_name, b.cnic, b.address, b.email, b.phone_number,
	b.category, b.room_id, b.nights, b.airport_pick_drop, b.total_price,
	b.status, b.notes, b.created_at, b.updated_at,
	r.id, r.number, r.category, r.price, r.is_available
`

const bookingFrom = ` FROM bookings b LEFT JOIN rooms r ON b.room_id = r.id `

func scanBooking(row interface{ Scan(...interface{}) error }) (*entity.Booking, error) {
	var (
		booking     entity.Booking
		roomID      sql.NullInt64
		joinedID    sql.NullInt64
		joinedNum   sql.NullString
		joinedCat   sql.NullString
		joinedPrice sql.NullInt64
		joinedAvail sql.NullBool
	)

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.FullName,
		&booking.CNIC,
		&booking.Address,
		&booking.Email,
		&booking.PhoneNumber,
		&booking.Category,
		&roomID,
		&booking.Nights,
		&booking.AirportPickDrop,
		&booking.TotalPrice,
		&booking.Status,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&joinedID,
		&joinedNum,
		&joinedCat,
		&joinedPrice,
		&joinedAvail,
	)
	if err != nil {
		return nil, err
	}

	if roomID.Valid {
		id := roomID.Int64
		booking.RoomID = &id
	}
	if joinedID.Valid {
		booking.Room = &entity.Room{
			ID:          joinedID.Int64,
			Number:      joinedNum.String,
			Category:    entity.RoomCategory(joinedCat.String),
			Price:       int(joinedPrice.Int64),
			IsAvailable: joinedAvail.Bool,
		}
	}

	return &booking, nil
}

// Create inserts a new booking. Room claim and insert run in one
// transaction: when no room is pre-assigned, the lowest-numbered available
// room of the category is claimed by a conditional UPDATE inside the same
// transaction, so the claim becomes visible only together with the booking
// row and a failed insert rolls it back. A pre-assigned room is marked
// occupied the same way. The reference must already be set; a unique
// constraint violation on it surfaces as entity.ErrReferenceConflict so the
// caller can regenerate and retry.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	if booking.RoomID == nil {
		room, err := scanRoom(tx.QueryRowContext(ctx, allocateRoomQuery, booking.Category, now))
		switch {
		case err == sql.ErrNoRows:
			// Category fully booked, the booking proceeds unassigned
		case err != nil:
			return fmt.Errorf("failed to allocate room: %w", err)
		default:
			booking.Room = room
			booking.RoomID = &room.ID
		}
	} else {
		query := `UPDATE rooms SET is_available = FALSE, updated_at = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, now, *booking.RoomID); err != nil {
			return fmt.Errorf("failed to occupy room: %w", err)
		}
	}

	// Total is derived after the claim so an allocated room's own price
	// takes effect; callers never supply it
	booking.TotalPrice = booking.CalculateTotal()

	query := `
		INSERT INTO bookings (
			reference, full_name, cnic, address, email, phone_number,
			category, room_id, nights, airport_pick_drop, total_price,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	var roomID sql.NullInt64
	if booking.RoomID != nil {
		roomID = sql.NullInt64{Int64: *booking.RoomID, Valid: true}
	}

	err = tx.QueryRowContext(ctx, query,
		booking.Reference,
		booking.FullName,
		booking.CNIC,
		booking.Address,
		booking.Email,
		booking.PhoneNumber,
		booking.Category,
		roomID,
		booking.Nights,
		booking.AirportPickDrop,
		booking.TotalPrice,
		booking.Status,
		booking.Notes,
		now,
		now,
	).Scan(&booking.ID)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return entity.ErrReferenceConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

// GetByID retrieves a booking with its linked room, if any
func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// GetByReference retrieves a booking by its guest-facing reference code
func (r *bookingRepository) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.reference = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, reference))
	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	return booking, nil
}

// Update persists every mutable field except the reference, which is
// assigned once at first persist and never rewritten.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET full_name = $1, cnic = $2, address = $3, email = $4, phone_number = $5,
		    category = $6, room_id = $7, nights = $8, airport_pick_drop = $9,
		    total_price = $10, status = $11, notes = $12, updated_at = $13
		WHERE id = $14
	`

	var roomID sql.NullInt64
	if booking.RoomID != nil {
		roomID = sql.NullInt64{Int64: *booking.RoomID, Valid: true}
	}

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		booking.FullName,
		booking.CNIC,
		booking.Address,
		booking.Email,
		booking.PhoneNumber,
		booking.Category,
		roomID,
		booking.Nights,
		booking.AirportPickDrop,
		booking.TotalPrice,
		booking.Status,
		booking.Notes,
		now,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	booking.UpdatedAt = now
	return nil
}

// UpdateStatus updates only the status of a booking
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*entity.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) GetAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` ORDER BY b.created_at DESC`
	return r.queryBookings(ctx, query)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.status = $1 ORDER BY b.created_at DESC`
	return r.queryBookings(ctx, query, status)
}

func (r *bookingRepository) GetRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + bookingColumns + bookingFrom + ` ORDER BY b.created_at DESC LIMIT $1`
	return r.queryBookings(ctx, query, limit)
}

// GetUnassigned returns active bookings that were created without a room,
// e.g. when the requested category was fully booked. These need manual
// follow-up by the concierge.
func (r *bookingRepository) GetUnassigned(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + `
		WHERE b.room_id IS NULL AND b.status IN ('pending', 'confirmed')
		ORDER BY b.created_at ASC`
	return r.queryBookings(ctx, query)
}

// CountByStatus counts bookings grouped by status
func (r *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM bookings GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.BookingStatus]int64)
	for rows.Next() {
		var status entity.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan booking count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking counts: %w", err)
	}

	return counts, nil
}

// SumRevenue sums total_price over non-cancelled bookings
func (r *bookingRepository) SumRevenue(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status IN ('pending', 'confirmed')`

	var revenue int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("failed to sum booking revenue: %w", err)
	}
	return revenue, nil
}
