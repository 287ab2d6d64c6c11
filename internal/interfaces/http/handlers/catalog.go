// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogHandler serves the public catalog
type CatalogHandler struct {
	catalogService *catalog.Service
	logger         *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(db, cfg),
		logger:         logger,
	}
}

// GetProducts handles GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	var req catalog.VinylListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters"})
		return
	}

	response, err := h.catalogService.GetVinyls(&req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list vinyls")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load catalog"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProduct handles GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	vinyl, err := h.catalogService.GetVinyl(uint(id))
	if err != nil {
		var notFound *catalog.VinylNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to load vinyl")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load product"})
		return
	}

	c.JSON(http.StatusOK, vinyl)
}

// GetProductBySlug handles GET /products/slug/:slug
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	vinyl, err := h.catalogService.GetVinylBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, vinyl)
}
