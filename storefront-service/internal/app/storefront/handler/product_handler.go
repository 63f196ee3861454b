package handler

import (
	"errors"
	"net/http"

	"storefront/pkg/logger"
	"storefront/storefront-service/internal/app/storefront/entity"
	"storefront/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalogService service.CatalogServiceInterface
}

func NewProductHandler(catalogService service.CatalogServiceInterface) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// ListProducts возвращает карточки каталога. Недоступный backend даёт пустой список
func (h *ProductHandler) ListProducts(c *gin.Context) {
	cards := h.catalogService.ListCards(c.Request.Context())

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: cards,
		Total:    len(cards),
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := entity.ID(c.Param("id"))

	detail, err := h.catalogService.GetDetail(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var form entity.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}
	form.ID = ""

	h.save(c, &form, http.StatusCreated, "Product created successfully")
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var form entity.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}
	form.ID = entity.ID(c.Param("id"))

	h.save(c, &form, http.StatusOK, "Product updated successfully")
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := entity.ID(c.Param("id"))

	if err := h.catalogService.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.writeMutationError(c, err, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) save(c *gin.Context, form *entity.ProductForm, status int, message string) {
	if err := h.catalogService.SaveProduct(c.Request.Context(), form); err != nil {
		h.writeMutationError(c, err, "Failed to save product")
		return
	}

	c.JSON(status, entity.SuccessResponse{
		Message: message,
		Data:    gin.H{"id": form.ID},
	})
}

func (h *ProductHandler) writeMutationError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: err.Error()})
		return
	}

	logger.Warn().Err(err).Str("product_id", c.Param("id")).Msg(fallback)
	c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: fallback, Message: backendMessage(err)})
}
