package api

import (
	"net/http"

	"storefront-service/internal/models"

	"github.com/gin-gonic/gin"
)

// listProducts handles catalog listing with an optional category filter
func (h *Handler) listProducts(c *gin.Context) {
	category := models.Category(c.Query("category"))

	products, err := h.catalogService.ListProducts(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, err, "Error fetching products")
		return
	}

	respondList(c, len(products), products)
}

// getProduct handles fetching a single product
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Product not found")
		return
	}

	respondData(c, http.StatusOK, "", product)
}
