package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotelease/backend/internal/entity"
	"github.com/hotelease/backend/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// SuccessResponse представляет успешный ответ
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// statusForError сопоставляет доменную ошибку с HTTP-статусом
func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrRoomNotFound),
		errors.Is(err, entity.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUnknownCategory),
		errors.Is(err, entity.ErrNightsOutOfRange),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidStatusTransition),
		errors.Is(err, entity.ErrBookingAlreadyCancelled),
		errors.Is(err, entity.ErrRoomAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Booking created successfully",
		Data:    booking,
	})
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid booking id",
		})
		return
	}

	var req service.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking updated successfully",
		Data:    booking,
	})
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid booking id",
		})
		return
	}

	if err := h.bookingService.ConfirmBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking confirmed",
	})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid booking id",
		})
		return
	}

	if err := h.bookingService.CancelBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking cancelled",
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid booking id",
		})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking retrieved successfully",
		Data:    booking,
	})
}

// GetBookingByReference позволяет гостю найти бронирование по коду подтверждения
func (h *BookingHandler) GetBookingByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Reference is required",
		})
		return
	}

	booking, err := h.bookingService.GetBookingByReference(c.Request.Context(), reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking retrieved successfully",
		Data:    booking,
	})
}

// GetAllBookings возвращает все бронирования с пагинацией
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	// Получаем параметры пагинации
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	ctx := c.Request.Context()

	var bookings []*entity.Booking

	// Если указан статус, получаем бронирования по статусу
	if status := c.Query("status"); status != "" {
		bookingStatus := entity.BookingStatus(status)
		if !bookingStatus.IsValid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Invalid booking status",
			})
			return
		}

		bookings, err = h.bookingService.GetBookingsByStatus(ctx, bookingStatus)
	} else {
		bookings, err = h.bookingService.GetAllBookings(ctx)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get bookings: " + err.Error(),
		})
		return
	}

	// Применяем пагинацию
	start := offset
	if start > len(bookings) {
		start = len(bookings)
	}
	end := start + limit
	if end > len(bookings) {
		end = len(bookings)
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Bookings retrieved successfully",
		Data:    bookings[start:end],
		Meta: map[string]interface{}{
			"total":    len(bookings),
			"limit":    limit,
			"offset":   offset,
			"has_more": end < len(bookings),
		},
	})
}

// GetUnassignedBookings возвращает активные бронирования без назначенного номера
func (h *BookingHandler) GetUnassignedBookings(c *gin.Context) {
	bookings, err := h.bookingService.GetUnassignedBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get unassigned bookings: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Unassigned bookings retrieved successfully",
		Data:    bookings,
		Meta: map[string]interface{}{
			"total": len(bookings),
		},
	})
}
