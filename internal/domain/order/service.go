// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/cart"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"gorm.io/gorm"
)

// totalTolerance absorbs float rounding between the client's arithmetic
// and ours. Anything beyond half a cent is a real mismatch.
const totalTolerance = 0.005

// Service orchestrates checkout and order retrieval
type Service struct {
	db             *gorm.DB
	config         *config.Config
	catalogService *catalog.Service
	cartService    *cart.Service
	logger         *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, catalogService *catalog.Service, cartService *cart.Service, logger *logrus.Logger) *Service {
	return &Service{
		db:             db,
		config:         cfg,
		catalogService: catalogService,
		cartService:    cartService,
		logger:         logger,
	}
}

// CheckoutItem is one submitted order line. Title and Price are display
// fields from the client's cart; the catalog remains authoritative for
// both pricing and stock.
type CheckoutItem struct {
	ID       uint    `json:"id" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price"`
	Title    string  `json:"title"`
}

// CheckoutRequest represents a checkout payload
type CheckoutRequest struct {
	Items  []CheckoutItem `json:"items" binding:"required"`
	Total  float64        `json:"total"`
	UserID *uint          `json:"userId"`
}

// CheckoutResult carries the outcome of a successful checkout
type CheckoutResult struct {
	OrderID uint
	Total   float64
}

// Checkout validates a submitted cart against the catalog, records the
// order with its lines in one transaction, then decrements stock and
// clears the buyer's server-side cart. The authenticated identity from
// the session always wins over any userId in the body.
func (s *Service) Checkout(authUserID *uint, req *CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	userID := authUserID
	if userID == nil {
		userID = req.UserID
	}

	var computedTotal float64
	for _, item := range req.Items {
		vinyl, err := s.catalogService.GetVinyl(item.ID)
		if err != nil {
			return nil, err
		}
		if vinyl.Stock < item.Quantity {
			return nil, &catalog.InsufficientStockError{
				ID:        vinyl.ID,
				Title:     vinyl.Title,
				Available: vinyl.Stock,
				Requested: item.Quantity,
			}
		}
		computedTotal += vinyl.Price * float64(item.Quantity)
	}

	if math.Abs(computedTotal-req.Total) > totalTolerance {
		s.logger.WithFields(logrus.Fields{
			"submitted": req.Total,
			"computed":  computedTotal,
		}).Warn("Rejecting checkout with mismatched total")
		return nil, ErrTotalMismatch
	}

	ord := &Order{
		UserID: userID,
		Total:  req.Total,
		Status: OrderStatusCompleted,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ord).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		lines := make([]OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, OrderItem{
				OrderID:       ord.ID,
				VinylID:       item.ID,
				Quantity:      item.Quantity,
				PurchasePrice: item.Price,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is committed; stock and cart cleanup run best-effort.
	for _, item := range req.Items {
		if err := s.catalogService.DecrementStock(item.ID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"order_id": ord.ID,
				"vinyl_id": item.ID,
				"quantity": item.Quantity,
			}).Error("Failed to decrement stock after checkout")
		}
	}

	if authUserID != nil {
		if err := s.cartService.ClearUserCart(*authUserID); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"order_id": ord.ID,
				"user_id":  *authUserID,
			}).Warn("Failed to clear user cart after checkout")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": ord.ID,
		"total":    ord.Total,
		"lines":    len(req.Items),
	}).Info("Order placed")

	return &CheckoutResult{OrderID: ord.ID, Total: ord.Total}, nil
}

// GetOrder retrieves an order with its lines
func (s *Service) GetOrder(id uint) (*Order, error) {
	var ord Order
	if err := s.db.Preload("Items").First(&ord, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve order %d: %w", id, err)
	}
	return &ord, nil
}

// OrderListResponse represents a page of a user's order history
type OrderListResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination catalog.Pagination `json:"pagination"`
}

// GetUserOrders retrieves a page of a user's orders, newest first
func (s *Service) GetUserOrders(userID uint, page, limit int) (*OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (page - 1) * limit
	if err := query.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &OrderListResponse{
		Orders: orders,
		Pagination: catalog.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
