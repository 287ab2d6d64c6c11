// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/cart"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"github.com/your-org/vinyl-store/internal/domain/order"
	"github.com/your-org/vinyl-store/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// OrderHandler serves checkout and order history
type OrderHandler struct {
	orderService *order.Service
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *OrderHandler {
	catalogService := catalog.NewService(db, cfg)
	cartService := cart.NewService(db, cfg)

	return &OrderHandler{
		orderService: order.NewService(db, cfg, catalogService, cartService, logger),
		logger:       logger,
	}
}

// Create handles POST /orders/create. Guests may check out; when a
// session exists its identity overrides any userId in the body.
func (h *OrderHandler) Create(c *gin.Context) {
	var req order.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
		return
	}

	var authUserID *uint
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		authUserID = &userID
	}

	result, err := h.orderService.Checkout(authUserID, &req)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orderId": result.OrderID,
		"message": "Order placed successfully",
	})
}

// List handles GET /orders for the authenticated user
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := h.orderService.GetUserOrders(userID, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load orders"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Checkout failures use the `error` key; the storefront reads it by name.
func (h *OrderHandler) respondCheckoutError(c *gin.Context, err error) {
	if errors.Is(err, order.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, order.ErrTotalMismatch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var notFound *catalog.VinylNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var insufficient *catalog.InsufficientStockError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithError(err).Error("Checkout failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not process the order"})
}
