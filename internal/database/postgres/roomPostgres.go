package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hotelease/backend/internal/entity"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) RoomRepository {
	return &roomRepository{db: db}
}

const roomColumns = `
	id, number, category, price, description,
	main_image_url, washroom_image_url, balcony_image_url, exterior_image_url,
	is_available, amenities, created_at, updated_at
`

func scanRoom(row interface{ Scan(...interface{}) error }) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.Number,
		&room.Category,
		&room.Price,
		&room.Description,
		&room.MainImageURL,
		&room.WashroomImageURL,
		&room.BalconyImageURL,
		&room.ExteriorImageURL,
		&room.IsAvailable,
		&room.Amenities,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (
			number, category, price, description,
			main_image_url, washroom_image_url, balcony_image_url, exterior_image_url,
			is_available, amenities, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		room.Number,
		room.Category,
		room.Price,
		room.Description,
		room.MainImageURL,
		room.WashroomImageURL,
		room.BalconyImageURL,
		room.ExteriorImageURL,
		room.IsAvailable,
		room.Amenities,
		now,
		now,
	).Scan(&room.ID)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return entity.ErrRoomAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

// GetByID retrieves a room by its internal identifier
func (r *roomRepository) GetByID(ctx context.Context, id int64) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// GetByNumber retrieves a room by its human-readable number
func (r *roomRepository) GetByNumber(ctx context.Context, number string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE number = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, number))
	if err == sql.ErrNoRows {
		return nil, entity.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by number: %w", err)
	}
	return room, nil
}

func (r *roomRepository) GetAll(ctx context.Context) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY category, number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) GetByCategory(ctx context.Context, category entity.RoomCategory) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE category = $1 ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms by category: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET number = $1, category = $2, price = $3, description = $4,
		    main_image_url = $5, washroom_image_url = $6, balcony_image_url = $7,
		    exterior_image_url = $8, is_available = $9, amenities = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		room.Number,
		room.Category,
		room.Price,
		room.Description,
		room.MainImageURL,
		room.WashroomImageURL,
		room.BalconyImageURL,
		room.ExteriorImageURL,
		room.IsAvailable,
		room.Amenities,
		time.Now(),
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRoomNotFound
	}

	return nil
}

// CategoryExists reports whether the hotel has any room of the category,
// available or not. Used to reject bookings for unregistered categories.
func (r *roomRepository) CategoryExists(ctx context.Context, category entity.RoomCategory) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE category = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, category).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return exists, nil
}

// allocateRoomQuery claims the lowest-numbered available room of a category.
// The selection and the availability flip are a single conditional UPDATE, so
// two concurrent claims for the last room of a category cannot both take it.
// Executed inside the booking-create transaction, never on its own; no
// matching row surfaces as sql.ErrNoRows.
const allocateRoomQuery = `
	UPDATE rooms
	SET is_available = FALSE, updated_at = $2
	WHERE id = (
		SELECT id FROM rooms
		WHERE category = $1 AND is_available = TRUE
		ORDER BY number ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING ` + roomColumns

// SetAvailability writes the room's availability flag. Idempotent: the
// synchronizer may re-run it after a partial failure.
func (r *roomRepository) SetAvailability(ctx context.Context, roomID int64, available bool) error {
	query := `UPDATE rooms SET is_available = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, available, time.Now(), roomID)
	if err != nil {
		return fmt.Errorf("failed to set room availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRoomNotFound
	}

	return nil
}

// ReconcileAvailability rewrites every room's availability flag from the
// bookings table: a room is unavailable exactly when some pending or
// confirmed booking links to it. Returns the number of corrected rows.
func (r *roomRepository) ReconcileAvailability(ctx context.Context) (int64, error) {
	query := `
		UPDATE rooms r
		SET is_available = NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id AND b.status IN ('pending', 'confirmed')
		), updated_at = $1
		WHERE r.is_available = EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id AND b.status IN ('pending', 'confirmed')
		)
	`

	result, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile room availability: %w", err)
	}

	corrected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return corrected, nil
}

// GetOccupancyStats returns total, available and booked room counts
func (r *roomRepository) GetOccupancyStats(ctx context.Context) (*entity.OccupancyStats, error) {
	query := `
		SELECT
			COUNT(*) as total_rooms,
			COALESCE(SUM(CASE WHEN is_available THEN 1 ELSE 0 END), 0) as available_rooms,
			COALESCE(SUM(CASE WHEN is_available THEN 0 ELSE 1 END), 0) as booked_rooms
		FROM rooms
	`

	var stats entity.OccupancyStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalRooms,
		&stats.AvailableRooms,
		&stats.BookedRooms,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy stats: %w", err)
	}

	return &stats, nil
}
