// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/cart"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"github.com/your-org/vinyl-store/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// cartSessionCookie identifies a guest's snapshot cart across requests
const cartSessionCookie = "cart-session"

// CartHandler serves both cart flavors: authenticated users get the
// database-backed shop_car mirror, guests get a Redis snapshot cart
// scoped to an anonymous session cookie.
type CartHandler struct {
	cartService    *cart.Service
	catalogService *catalog.Service
	backend        cart.Backend
	config         *config.Config
	logger         *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService:    cart.NewService(db, cfg),
		catalogService: catalog.NewService(db, cfg),
		backend:        cart.NewRedisBackend(redisClient, cfg.Session.GuestCartTTL),
		config:         cfg,
		logger:         logger,
	}
}

type cartItemRequest struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// Quantity is a pointer so an explicit 0 survives binding; zero means
// remove the line.
type cartUpdateRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		response, err := h.cartService.GetUserCart(userID)
		if err != nil {
			h.logger.WithError(err).Error("Failed to load user cart")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load cart"})
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	store := h.guestStore(c)
	c.JSON(http.StatusOK, gin.H{
		"items": store.Items(),
		"total": store.Total(),
		"count": store.Count(),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product id is required"})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.cartService.AddItem(userID, req.ID); err != nil {
			h.respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	vinyl, err := h.catalogService.GetVinyl(req.ID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	store := h.guestStore(c)
	added := store.AddToCart(c.Request.Context(), cart.Item{
		ID:     vinyl.ID,
		Title:  vinyl.Title,
		Artist: vinyl.Artist,
		Price:  vinyl.Price,
		Img:    vinyl.Img,
		Slug:   vinyl.Slug,
		Stock:  vinyl.Stock,
	}, req.Quantity)
	if !added {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No more stock available for this item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	var req cartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity is required"})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.cartService.UpdateItem(userID, uint(id), *req.Quantity); err != nil {
			h.respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	store := h.guestStore(c)
	if !store.UpdateQuantity(c.Request.Context(), uint(id), *req.Quantity) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not update quantity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.cartService.RemoveItem(userID, uint(id)); err != nil {
			h.logger.WithError(err).Error("Failed to remove cart item")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	store := h.guestStore(c)
	store.RemoveFromCart(c.Request.Context(), uint(id))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.cartService.ClearUserCart(userID); err != nil {
			h.logger.WithError(err).Error("Failed to clear user cart")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	store := h.guestStore(c)
	store.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// guestStore loads the snapshot cart for the anonymous session, minting
// the session cookie on first use
func (h *CartHandler) guestStore(c *gin.Context) *cart.Store {
	sessionID, err := c.Cookie(cartSessionCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		maxAge := int(h.config.Session.GuestCartTTL.Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cartSessionCookie, sessionID, maxAge, "/", h.config.Session.CookieDomain, h.config.IsProduction(), true)
	}

	key := fmt.Sprintf("cart:session:%s", sessionID)
	return cart.NewStore(c.Request.Context(), h.backend, key, h.logger)
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	var notFound *catalog.VinylNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	var insufficient *catalog.InsufficientStockError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	h.logger.WithError(err).Error("Cart operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update cart"})
}
