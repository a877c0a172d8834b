package entity

import (
	"fmt"
)

// OccupancyStats содержит сводку занятости номерного фонда
type OccupancyStats struct {
	TotalRooms     int `json:"total_rooms"`
	AvailableRooms int `json:"available_rooms"`
	BookedRooms    int `json:"booked_rooms"`
}

// OccupancyRate вычисляет долю занятых номеров (0.0 до 1.0)
func (s *OccupancyStats) OccupancyRate() float64 {
	if s.TotalRooms == 0 {
		return 0.0
	}
	return float64(s.BookedRooms) / float64(s.TotalRooms)
}

// String возвращает строковое представление занятости
func (s *OccupancyStats) String() string {
	return fmt.Sprintf("Rooms: %d total, %d available, %d booked (%.1f%% occupied)",
		s.TotalRooms, s.AvailableRooms, s.BookedRooms, s.OccupancyRate()*100)
}

// DashboardStats — сводка для панели персонала
type DashboardStats struct {
	Occupancy        OccupancyStats          `json:"occupancy"`
	TotalBookings    int64                   `json:"total_bookings"`
	BookingsByStatus map[BookingStatus]int64 `json:"bookings_by_status"`
	UnassignedCount  int64                   `json:"unassigned_count"`
	Revenue          int64                   `json:"revenue"`
	RecentBookings   []*Booking              `json:"recent_bookings"`
}

// NeedsFollowUp проверяет, есть ли брони без назначенного номера,
// требующие ручного вмешательства консьержа
func (s *DashboardStats) NeedsFollowUp() bool {
	return s.UnassignedCount > 0
}

// StarIcon bucket values for rendering an average rating.
const (
	StarFull  = "full"
	StarHalf  = "half"
	StarEmpty = "empty"
)

// ReviewSummary содержит агрегированную оценку по всем отзывам
type ReviewSummary struct {
	Count         int64    `json:"count"`
	AverageRating float64  `json:"average_rating"`
	StarIcons     []string `json:"star_icons"`
}

// ComputeStarIcons fills StarIcons with full/half/empty buckets for the
// average rating, one per star position 1..5.
func (s *ReviewSummary) ComputeStarIcons() {
	icons := make([]string, 0, MaxRating)
	for star := MinRating; star <= MaxRating; star++ {
		switch {
		case s.AverageRating >= float64(star):
			icons = append(icons, StarFull)
		case s.AverageRating+0.5 >= float64(star):
			icons = append(icons, StarHalf)
		default:
			icons = append(icons, StarEmpty)
		}
	}
	s.StarIcons = icons
}
