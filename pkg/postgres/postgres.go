package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/hotelease/backend/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id SERIAL PRIMARY KEY,
			number VARCHAR(10) UNIQUE NOT NULL,
			category VARCHAR(20) NOT NULL,
			price INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			main_image_url TEXT NOT NULL DEFAULT '',
			washroom_image_url TEXT NOT NULL DEFAULT '',
			balcony_image_url TEXT NOT NULL DEFAULT '',
			exterior_image_url TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			amenities JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			reference VARCHAR(12) UNIQUE NOT NULL,
			full_name VARCHAR(100) NOT NULL,
			cnic VARCHAR(20) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL,
			phone_number VARCHAR(30) NOT NULL DEFAULT '',
			category VARCHAR(20) NOT NULL,
			room_id INTEGER REFERENCES rooms(id),
			nights INTEGER NOT NULL,
			airport_pick_drop BOOLEAN NOT NULL DEFAULT FALSE,
			total_price INTEGER NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS services (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price INTEGER,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL,
			location VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS contact_messages (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			subject VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			handled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_rooms_category ON rooms(category)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_category_available ON rooms(category, is_available)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_reference ON bookings(reference)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
