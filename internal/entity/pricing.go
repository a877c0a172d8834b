package entity

// Nightly rates per category in PKR, whole units. The rate table is static
// hotel policy; rooms may carry their own per-night price which takes
// precedence over the table (see Booking.BaseRate).
var CategoryRates = map[RoomCategory]int{
	CategorySingle:    5000,
	CategoryMaster:    9000,
	CategoryMeeting:   10000,
	CategoryDeluxe:    8000,
	CategoryExecutive: 12000,
	CategorySuite:     15000,
}

// AirportCharge — фиксированная плата за трансфер из аэропорта,
// начисляется один раз за бронирование независимо от числа ночей.
const AirportCharge = 7000

const (
	MinNights = 1
	MaxNights = 7
)

// NightlyRate returns the table rate for a category. Unknown categories
// return 0 rather than failing, so price computation survives data drift.
func NightlyRate(category RoomCategory) int {
	return CategoryRates[category]
}

// AddonCharge returns the flat airport pick & drop charge, or zero.
func AddonCharge(airportPickDrop bool) int {
	if airportPickDrop {
		return AirportCharge
	}
	return 0
}

// RateCard представляет строку прайс-листа для страницы бронирования
type RateCard struct {
	Code  RoomCategory `json:"code"`
	Label string       `json:"label"`
	Price int          `json:"price"`
}

// RateCards returns the display rate cards in catalog order.
func RateCards() []RateCard {
	cards := make([]RateCard, 0, len(AllCategories))
	for _, category := range AllCategories {
		cards = append(cards, RateCard{
			Code:  category,
			Label: category.Label(),
			Price: NightlyRate(category),
		})
	}
	return cards
}
