package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hotelease/backend/internal/entity"
)

type serviceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *entity.Service) error {
	query := `
		INSERT INTO services (name, icon, description, price, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var price sql.NullInt64
	if svc.Price != nil {
		price = sql.NullInt64{Int64: int64(*svc.Price), Valid: true}
	}

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		svc.Name,
		svc.Icon,
		svc.Description,
		price,
		svc.Featured,
		now,
	).Scan(&svc.ID)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	svc.CreatedAt = now
	return nil
}

func (r *serviceRepository) queryServices(ctx context.Context, query string, args ...interface{}) ([]*entity.Service, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var svc entity.Service
		var price sql.NullInt64
		err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Icon,
			&svc.Description,
			&price,
			&svc.Featured,
			&svc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		if price.Valid {
			p := int(price.Int64)
			svc.Price = &p
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) GetAll(ctx context.Context) ([]*entity.Service, error) {
	query := `
		SELECT id, name, icon, description, price, featured, created_at
		FROM services
		ORDER BY name
	`
	return r.queryServices(ctx, query)
}

func (r *serviceRepository) GetFeatured(ctx context.Context, limit int) ([]*entity.Service, error) {
	if limit <= 0 {
		limit = 6
	}

	query := `
		SELECT id, name, icon, description, price, featured, created_at
		FROM services
		WHERE featured = TRUE
		ORDER BY name
		LIMIT $1
	`
	return r.queryServices(ctx, query, limit)
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (name, photo_url, rating, comment, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		review.Name,
		review.PhotoURL,
		review.Rating,
		review.Comment,
		review.Location,
		now,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	review.CreatedAt = now
	return nil
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]*entity.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.Name,
			&review.PhotoURL,
			&review.Rating,
			&review.Comment,
			&review.Location,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) GetAll(ctx context.Context) ([]*entity.Review, error) {
	query := `
		SELECT id, name, photo_url, rating, comment, location, created_at
		FROM reviews
		ORDER BY created_at DESC
	`
	return r.queryReviews(ctx, query)
}

func (r *reviewRepository) GetRecent(ctx context.Context, limit int) ([]*entity.Review, error) {
	if limit <= 0 {
		limit = 3
	}

	query := `
		SELECT id, name, photo_url, rating, comment, location, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.queryReviews(ctx, query, limit)
}

// GetSummary returns the review count and average rating
func (r *reviewRepository) GetSummary(ctx context.Context) (*entity.ReviewSummary, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews`

	var summary entity.ReviewSummary
	err := r.db.QueryRowContext(ctx, query).Scan(&summary.Count, &summary.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("failed to get review summary: %w", err)
	}

	summary.ComputeStarIcons()
	return &summary, nil
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *entity.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, handled, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		now,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	msg.Handled = false
	msg.CreatedAt = now
	return nil
}

func (r *contactRepository) GetAll(ctx context.Context, unhandledOnly bool) ([]*entity.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, handled, created_at
		FROM contact_messages
	`
	if unhandledOnly {
		query += ` WHERE handled = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*entity.ContactMessage
	for rows.Next() {
		var msg entity.ContactMessage
		err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Subject,
			&msg.Message,
			&msg.Handled,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	return messages, nil
}

func (r *contactRepository) MarkHandled(ctx context.Context, id int64) error {
	query := `UPDATE contact_messages SET handled = TRUE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark message handled: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrMessageNotFound
	}

	return nil
}
