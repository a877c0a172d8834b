package entity

import (
	"time"
)

type RoomCategory string

const (
	CategorySingle    RoomCategory = "single"
	CategoryMaster    RoomCategory = "master"
	CategoryMeeting   RoomCategory = "meeting"
	CategoryDeluxe    RoomCategory = "deluxe"
	CategoryExecutive RoomCategory = "executive"
	CategorySuite     RoomCategory = "suite"
)

// AllCategories перечисляет категории в порядке отображения на сайте
var AllCategories = []RoomCategory{
	CategorySingle,
	CategoryMaster,
	CategoryMeeting,
	CategoryDeluxe,
	CategoryExecutive,
	CategorySuite,
}

var categoryLabels = map[RoomCategory]string{
	CategorySingle:    "Single Room",
	CategoryMaster:    "Master Room",
	CategoryMeeting:   "Meeting Room",
	CategoryDeluxe:    "Deluxe Room",
	CategoryExecutive: "Executive Room",
	CategorySuite:     "Luxury Suite",
}

// IsValid reports whether the category is one of the registered room tiers.
func (c RoomCategory) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable category name shown on rate cards.
func (c RoomCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type Room struct {
	ID               int64        `json:"id" db:"id"`
	Number           string       `json:"number" db:"number"`
	Category         RoomCategory `json:"category" db:"category"`
	Price            int          `json:"price" db:"price"`
	Description      string       `json:"description" db:"description"`
	MainImageURL     string       `json:"main_image_url" db:"main_image_url"`
	WashroomImageURL string       `json:"washroom_image_url" db:"washroom_image_url"`
	BalconyImageURL  string       `json:"balcony_image_url" db:"balcony_image_url"`
	ExteriorImageURL string       `json:"exterior_image_url" db:"exterior_image_url"`
	IsAvailable      bool         `json:"is_available" db:"is_available"`
	Amenities        StringList   `json:"amenities" db:"amenities"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// StatusLabel возвращает подпись для каталога номеров
func (r *Room) StatusLabel() string {
	if r.IsAvailable {
		return "Available"
	}
	return "Booked"
}
