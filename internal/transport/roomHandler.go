package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotelease/backend/internal/entity"
	"github.com/hotelease/backend/internal/service"
)

type RoomHandler struct {
	roomService service.RoomService
}

func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Room created successfully",
		Data:    room,
	})
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid room id",
		})
		return
	}

	var req service.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Room updated successfully",
		Data:    room,
	})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid room id",
		})
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Room retrieved successfully",
		Data:    room,
	})
}

// GetAllRooms возвращает каталог номеров, опционально по категории
func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	ctx := c.Request.Context()

	var rooms []*entity.Room
	var err error

	if category := c.Query("category"); category != "" {
		rooms, err = h.roomService.GetRoomsByCategory(ctx, entity.RoomCategory(category))
	} else {
		rooms, err = h.roomService.GetAllRooms(ctx)
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Rooms retrieved successfully",
		Data:    rooms,
		Meta: map[string]interface{}{
			"total": len(rooms),
		},
	})
}

// GetRateCards возвращает прайс-лист по категориям
func (h *RoomHandler) GetRateCards(c *gin.Context) {
	cards, err := h.roomService.GetRateCards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get rate cards: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Rate cards retrieved successfully",
		Data:    cards,
	})
}

// GetOccupancy возвращает сводку занятости номеров
func (h *RoomHandler) GetOccupancy(c *gin.Context) {
	stats, err := h.roomService.GetOccupancy(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get occupancy stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Occupancy stats retrieved successfully",
		Data:    stats,
	})
}
