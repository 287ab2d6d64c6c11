// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles the per-user shop_car mirror
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart mirror service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UserCartItem is a mirror row joined with its catalog display fields
type UserCartItem struct {
	VinylID  uint    `json:"vinyl_id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Price    float64 `json:"price"`
	Img      string  `json:"img"`
	Slug     string  `json:"slug"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
}

// UserCartResponse represents a user's mirrored cart with totals
type UserCartResponse struct {
	Items []UserCartItem `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"count"`
}

// GetUserCart retrieves the mirrored cart for a user
func (s *Service) GetUserCart(userID uint) (*UserCartResponse, error) {
	var rows []ShopCartItem
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart for user %d: %w", userID, err)
	}

	response := &UserCartResponse{Items: []UserCartItem{}}
	for _, row := range rows {
		var vinyl catalog.Vinyl
		if err := s.db.First(&vinyl, row.VinylID).Error; err != nil {
			// Catalog row gone; the cart line is meaningless without it.
			continue
		}

		response.Items = append(response.Items, UserCartItem{
			VinylID:  vinyl.ID,
			Title:    vinyl.Title,
			Artist:   vinyl.Artist,
			Price:    vinyl.Price,
			Img:      vinyl.Img,
			Slug:     vinyl.Slug,
			Quantity: row.Quantity,
			Stock:    vinyl.Stock,
		})
		response.Total += vinyl.Price * float64(row.Quantity)
		response.Count += row.Quantity
	}

	return response, nil
}

// AddItem adds one unit of a vinyl to the user's mirrored cart, bounded
// by current stock
func (s *Service) AddItem(userID, vinylID uint) error {
	var vinyl catalog.Vinyl
	if err := s.db.First(&vinyl, vinylID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &catalog.VinylNotFoundError{ID: vinylID}
		}
		return fmt.Errorf("failed to look up vinyl %d: %w", vinylID, err)
	}

	var existing ShopCartItem
	err := s.db.Where("user_id = ? AND vinyl_id = ?", userID, vinylID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if vinyl.Stock < 1 {
			return &catalog.InsufficientStockError{ID: vinyl.ID, Title: vinyl.Title, Available: vinyl.Stock, Requested: 1}
		}
		item := ShopCartItem{
			UserID:   userID,
			VinylID:  vinylID,
			Quantity: 1,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check cart item: %w", err)
	}

	if existing.Quantity >= vinyl.Stock {
		return &catalog.InsufficientStockError{ID: vinyl.ID, Title: vinyl.Title, Available: vinyl.Stock, Requested: existing.Quantity + 1}
	}

	existing.Quantity++
	if err := s.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// UpdateItem replaces a line's quantity; zero or less removes the line
func (s *Service) UpdateItem(userID, vinylID uint, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(userID, vinylID)
	}

	var vinyl catalog.Vinyl
	if err := s.db.First(&vinyl, vinylID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &catalog.VinylNotFoundError{ID: vinylID}
		}
		return fmt.Errorf("failed to look up vinyl %d: %w", vinylID, err)
	}

	if quantity > vinyl.Stock {
		return &catalog.InsufficientStockError{ID: vinyl.ID, Title: vinyl.Title, Available: vinyl.Stock, Requested: quantity}
	}

	result := s.db.Model(&ShopCartItem{}).
		Where("user_id = ? AND vinyl_id = ?", userID, vinylID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in cart")
	}
	return nil
}

// RemoveItem drops a line; absent lines are a no-op
func (s *Service) RemoveItem(userID, vinylID uint) error {
	err := s.db.Where("user_id = ? AND vinyl_id = ?", userID, vinylID).Delete(&ShopCartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// ClearUserCart deletes every mirrored row for a user
func (s *Service) ClearUserCart(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&ShopCartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %d: %w", userID, err)
	}
	return nil
}
