// internal/interfaces/http/handlers/receipt.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/cart"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"github.com/your-org/vinyl-store/internal/domain/order"
	"github.com/your-org/vinyl-store/internal/interfaces/http/middleware"
	"github.com/your-org/vinyl-store/internal/pkg/pdf"
	"gorm.io/gorm"
)

// ReceiptHandler serves PDF receipts for placed orders
type ReceiptHandler struct {
	orderService   *order.Service
	catalogService *catalog.Service
	pdfService     *pdf.Service
	logger         *logrus.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *ReceiptHandler {
	catalogService := catalog.NewService(db, cfg)
	cartService := cart.NewService(db, cfg)

	return &ReceiptHandler{
		orderService:   order.NewService(db, cfg, catalogService, cartService, logger),
		catalogService: catalogService,
		pdfService:     pdf.NewService(cfg),
		logger:         logger,
	}
}

// Get handles GET /orders/:id/receipt. Only the order's owner can
// download its receipt.
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id"})
		return
	}

	ord, err := h.orderService.GetOrder(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if ord.UserID == nil || *ord.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	lines := make([]pdf.ReceiptLine, 0, len(ord.Items))
	for _, item := range ord.Items {
		line := pdf.ReceiptLine{
			Title:     fmt.Sprintf("Item #%d", item.VinylID),
			Quantity:  item.Quantity,
			UnitPrice: item.PurchasePrice,
			LineTotal: item.PurchasePrice * float64(item.Quantity),
		}
		if vinyl, err := h.catalogService.GetVinyl(item.VinylID); err == nil {
			line.Title = vinyl.Title
			line.Artist = vinyl.Artist
		}
		lines = append(lines, line)
	}

	buf, err := h.pdfService.GenerateReceipt(ord, lines)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", ord.ID).Error("Failed to generate receipt")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", ord.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
