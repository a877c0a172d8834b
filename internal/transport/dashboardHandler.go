package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelease/backend/internal/service"
)

type DashboardHandler struct {
	bookingService service.BookingService
}

func NewDashboardHandler(bookingService service.BookingService) *DashboardHandler {
	return &DashboardHandler{bookingService: bookingService}
}

// GetStats возвращает сводку для панели администратора
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.bookingService.GetDashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get dashboard stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Dashboard stats retrieved successfully",
		Data:    stats,
	})
}

// Reconcile запускает сверку флагов доступности номеров вручную
func (h *DashboardHandler) Reconcile(c *gin.Context) {
	corrected, err := h.bookingService.ReconcileAvailability(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to reconcile availability: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Availability reconciled",
		Meta: map[string]interface{}{
			"corrected": corrected,
		},
	})
}
