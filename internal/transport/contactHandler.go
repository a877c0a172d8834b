package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotelease/backend/internal/service"
)

type ContactHandler struct {
	contactService service.ContactService
	serviceCatalog service.ServiceCatalog
}

func NewContactHandler(contactService service.ContactService, serviceCatalog service.ServiceCatalog) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		serviceCatalog: serviceCatalog,
	}
}

func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req service.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	msg, err := h.contactService.SubmitMessage(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Message submitted successfully",
		Data:    msg,
	})
}

func (h *ContactHandler) GetAllMessages(c *gin.Context) {
	unhandledOnly := c.DefaultQuery("unhandled", "false") == "true"

	msgs, err := h.contactService.GetMessages(c.Request.Context(), unhandledOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get messages: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Messages retrieved successfully",
		Data:    msgs,
		Meta: map[string]interface{}{
			"total": len(msgs),
		},
	})
}

func (h *ContactHandler) MarkMessageHandled(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid message id",
		})
		return
	}

	if err := h.contactService.MarkHandled(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Message marked as handled",
	})
}

// GetAllServices возвращает каталог гостиничных услуг. С параметром
// featured отдает только подборку для главной страницы.
func (h *ContactHandler) GetAllServices(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("featured") == "true" {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "3"))
		if err != nil || limit <= 0 {
			limit = 3
		}

		svcs, err := h.serviceCatalog.GetFeaturedServices(ctx, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   "Failed to get featured services: " + err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, SuccessResponse{
			Success: true,
			Message: "Featured services retrieved successfully",
			Data:    svcs,
			Meta: map[string]interface{}{
				"total": len(svcs),
			},
		})
		return
	}

	svcs, err := h.serviceCatalog.GetServices(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get services: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Services retrieved successfully",
		Data:    svcs,
		Meta: map[string]interface{}{
			"total": len(svcs),
		},
	})
}

// CreateService добавляет услугу в каталог
func (h *ContactHandler) CreateService(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	svc, err := h.serviceCatalog.CreateService(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Service created successfully",
		Data:    svc,
	})
}
