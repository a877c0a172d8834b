package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hotelease/backend/internal/entity"
	"github.com/hotelease/backend/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req service.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Review submitted successfully",
		Data:    review,
	})
}

// GetAllReviews возвращает отзывы, с параметром recent отдает только
// последние для главной страницы
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	ctx := c.Request.Context()

	var reviews []*entity.Review
	var err error

	if c.Query("recent") == "true" {
		limit, convErr := strconv.Atoi(c.DefaultQuery("limit", "6"))
		if convErr != nil || limit <= 0 {
			limit = 6
		}
		reviews, err = h.reviewService.GetRecentReviews(ctx, limit)
	} else {
		reviews, err = h.reviewService.GetAllReviews(ctx)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get reviews: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Reviews retrieved successfully",
		Data:    reviews,
		Meta: map[string]interface{}{
			"total": len(reviews),
		},
	})
}

// GetReviewSummary возвращает среднюю оценку и звездные иконки
func (h *ReviewHandler) GetReviewSummary(c *gin.Context) {
	summary, err := h.reviewService.GetReviewSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get review summary: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Review summary retrieved successfully",
		Data:    summary,
	})
}
