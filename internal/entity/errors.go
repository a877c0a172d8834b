package entity

import "errors"

var (
	// Validation errors
	ErrUnknownCategory  = errors.New("unknown room category")
	ErrNightsOutOfRange = errors.New("booking nights must be between 1 and 7")

	// Booking errors
	ErrBookingNotFound          = errors.New("booking not found")
	ErrInvalidStatusTransition  = errors.New("invalid booking status transition")
	ErrBookingAlreadyCancelled  = errors.New("booking already cancelled")
	ErrReferenceConflict        = errors.New("booking reference already exists")
	ErrReferenceRetriesExceeded = errors.New("could not generate a unique booking reference")

	// Room errors
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room number already exists")

	// Catalog errors
	ErrMessageNotFound = errors.New("contact message not found")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
