// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/vinyl-store/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// VinylListRequest represents catalog list query parameters
type VinylListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Genre  string `form:"genre"`
	Search string `form:"search"`
}

// VinylListResponse represents a catalog page with pagination
type VinylListResponse struct {
	Vinyls     []Vinyl    `json:"vinyls"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetVinyls retrieves a page of the catalog with optional filters
func (s *Service) GetVinyls(req *VinylListRequest) (*VinylListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Vinyl{})

	if req.Genre != "" {
		query = query.Where("genre = ?", req.Genre)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("title LIKE ? OR artist LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count vinyls: %w", err)
	}

	var vinyls []Vinyl
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("title ASC").Offset(offset).Limit(req.Limit).Find(&vinyls).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve vinyls: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &VinylListResponse{
		Vinyls: vinyls,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetVinyl retrieves a single vinyl by id
func (s *Service) GetVinyl(id uint) (*Vinyl, error) {
	var vinyl Vinyl
	if err := s.db.First(&vinyl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &VinylNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to retrieve vinyl %d: %w", id, err)
	}
	return &vinyl, nil
}

// GetVinylBySlug retrieves a single vinyl by slug
func (s *Service) GetVinylBySlug(slug string) (*Vinyl, error) {
	var vinyl Vinyl
	if err := s.db.Where("slug = ?", slug).First(&vinyl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vinyl with slug %q not found", slug)
		}
		return nil, fmt.Errorf("failed to retrieve vinyl %q: %w", slug, err)
	}
	return &vinyl, nil
}

// CreateVinyl inserts a new catalog record
func (s *Service) CreateVinyl(vinyl *Vinyl) error {
	if err := s.db.Create(vinyl).Error; err != nil {
		return fmt.Errorf("failed to create vinyl %q: %w", vinyl.Title, err)
	}
	return nil
}

// DecrementStock atomically takes quantity units off a vinyl's stock.
// The write is conditional on sufficient stock, so two concurrent
// checkouts cannot drive stock negative: the slower one gets
// InsufficientStockError instead.
func (s *Service) DecrementStock(id uint, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("decrement quantity must be positive, got %d", quantity)
	}

	result := s.db.Model(&Vinyl{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock for vinyl %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the vinyl vanished or stock ran out
		// between validation and write. Re-read to report which.
		vinyl, err := s.GetVinyl(id)
		if err != nil {
			return err
		}
		return &InsufficientStockError{
			ID:        vinyl.ID,
			Title:     vinyl.Title,
			Available: vinyl.Stock,
			Requested: quantity,
		}
	}

	return nil
}
