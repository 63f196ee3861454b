package handler

import (
	"errors"
	"net/http"

	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
}

func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GetPanel возвращает отзывы товара вместе со сводкой
func (h *ReviewHandler) GetPanel(c *gin.Context) {
	panel := h.reviewService.LoadPanel(c.Request.Context(), entity.ID(c.Param("id")))
	c.JSON(http.StatusOK, panel)
}

// SubmitReview обрабатывает POST /products/:id/reviews.
// При отказе backend возвращает его сообщение и введённый черновик
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var draft entity.ReviewDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	panel, err := h.reviewService.SubmitReview(c.Request.Context(), session, entity.ID(c.Param("id")), draft)
	if err != nil {
		var submitErr *service.SubmitError
		switch {
		case errors.As(err, &submitErr):
			c.JSON(http.StatusBadGateway, entity.SubmitErrorResponse{
				Error: submitErr.Message,
				Draft: submitErr.Draft,
			})
		case errors.Is(err, service.ErrSubmissionInProgress):
			c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "Review submission already in progress"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to submit review"})
		}
		return
	}

	c.JSON(http.StatusCreated, panel)
}
