package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// allowedTransitions — закрытая таблица переходов статусов.
// Из cancelled выхода нет.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// IsValid reports whether the status is one of the three booking states.
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine permits moving to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OccupiesRoom reports whether a booking in this status holds its room.
// The availability synchronizer marks the linked room unavailable exactly
// when this is true.
func (s BookingStatus) OccupiesRoom() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	ID              int64         `json:"id" db:"id"`
	Reference       string        `json:"reference" db:"reference"`
	FullName        string        `json:"full_name" db:"full_name"`
	CNIC            string        `json:"cnic" db:"cnic"`
	Address         string        `json:"address" db:"address"`
	Email           string        `json:"email" db:"email"`
	PhoneNumber     string        `json:"phone_number" db:"phone_number"`
	Category        RoomCategory  `json:"category" db:"category"`
	RoomID          *int64        `json:"room_id,omitempty" db:"room_id"`
	Room            *Room         `json:"room,omitempty" db:"-"`
	Nights          int           `json:"nights" db:"nights"`
	AirportPickDrop bool          `json:"airport_pick_drop" db:"airport_pick_drop"`
	TotalPrice      int           `json:"total_price" db:"total_price"`
	Status          BookingStatus `json:"status" db:"status"`
	Notes           string        `json:"notes" db:"notes"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

const referenceLength = 12

// NewReference produces a 12-character uppercase hex booking reference
// truncated from a 128-bit random UUID. Collisions are improbable but not
// impossible; the unique constraint on bookings.reference is the backstop.
func NewReference() string {
	id := uuid.New()
	return strings.ToUpper(fmt.Sprintf("%x", id[:])[:referenceLength])
}

// BaseRate returns the per-night rate for the booking. A linked room's own
// price wins over the category table, mirroring what the rate card shows
// for that concrete room.
func (b *Booking) BaseRate() int {
	if b.Room != nil && b.Room.Price > 0 {
		return b.Room.Price
	}
	return NightlyRate(b.Category)
}

// AirportCharge returns the flat add-on portion of the total.
func (b *Booking) AirportCharge() int {
	return AddonCharge(b.AirportPickDrop)
}

// CalculateTotal recomputes the booking total from its current fields.
// The stored total_price is never trusted from callers; every persist path
// goes through this.
func (b *Booking) CalculateTotal() int {
	return b.BaseRate()*b.Nights + b.AirportCharge()
}

// Validate проверяет поля бронирования до любого обращения к хранилищу
func (b *Booking) Validate() error {
	if !b.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, b.Category)
	}
	if b.Nights < MinNights || b.Nights > MaxNights {
		return fmt.Errorf("%w: got %d", ErrNightsOutOfRange, b.Nights)
	}
	return nil
}
