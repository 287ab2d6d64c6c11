// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/vinyl-store/internal/domain/cart"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"github.com/your-org/vinyl-store/internal/domain/order"
	"github.com/your-org/vinyl-store/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all entities
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database migrations...")

	err := m.db.AutoMigrate(
		&user.User{},
		&catalog.Vinyl{},
		&cart.ShopCartItem{},
		&order.Order{},
		&order.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run auto-migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// CreateIndexes creates additional database indexes for performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_vinyls_genre_stock ON vinyls(genre, stock)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_items_order ON orders_items(order_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	log.Println("Database indexes created successfully")
	return nil
}

// SeedInitialData inserts a handful of catalog records so a fresh
// development database is browsable. Production seeding goes through
// cmd/seed with a real export file.
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Vinyl{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count vinyls: %w", err)
	}
	if count > 0 {
		log.Println("Catalog already populated, skipping initial data")
		return nil
	}

	log.Println("Seeding initial development data...")

	rock := "LP"
	samples := []catalog.Vinyl{
		{
			Title:     "Abbey Road",
			Slug:      "abbey-road",
			Artist:    "The Beatles",
			Price:     120.00,
			RealPrice: 150.00,
			Genre:     "Rock",
			Tracklist: `["Come Together","Something","Here Comes the Sun"]`,
			Img:       "",
			Type:      &rock,
			Stock:     10,
		},
		{
			Title:     "Kind of Blue",
			Slug:      "kind-of-blue",
			Artist:    "Miles Davis",
			Price:     95.50,
			RealPrice: 110.00,
			Genre:     "Jazz",
			Tracklist: `["So What","Freddie Freeloader","Blue in Green"]`,
			Img:       "",
			Type:      &rock,
			Stock:     5,
		},
		{
			Title:     "Rumours",
			Slug:      "rumours",
			Artist:    "Fleetwood Mac",
			Price:     105.00,
			RealPrice: 130.00,
			Genre:     "Rock",
			Tracklist: `["Dreams","Go Your Own Way","The Chain"]`,
			Img:       "",
			Type:      &rock,
			Stock:     8,
		},
	}

	if err := m.db.Create(&samples).Error; err != nil {
		return fmt.Errorf("failed to seed initial data: %w", err)
	}

	log.Println("Initial data seeded successfully")
	return nil
}
