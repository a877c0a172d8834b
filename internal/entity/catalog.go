package entity

import (
	"time"
)

// Service — услуга отеля, отображаемая на странице сервисов
type Service struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Icon        string    `json:"icon" db:"icon"`
	Description string    `json:"description" db:"description"`
	Price       *int      `json:"price,omitempty" db:"price"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Review — отзыв гостя с оценкой от 1 до 5
type Review struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photo_url" db:"photo_url"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	Location  string    `json:"location" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the review fields before persistence.
func (r *Review) Validate() error {
	if r.Name == "" || r.Comment == "" {
		return ErrInvalidInput
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidInput
	}
	return nil
}

// ContactMessage — сообщение с формы обратной связи
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Handled   bool      `json:"handled" db:"handled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
