// internal/domain/order/entity.go
package order

import (
	"time"
)

// Order status values. The store sells pay-on-delivery, so an order is
// recorded as completed the moment it is placed.
const (
	OrderStatusCompleted = "completed"
)

// Order represents a placed order
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    *uint       `gorm:"index" json:"user_id"`
	Total     float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Status    string      `gorm:"size:20;not null;default:'completed'" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents one purchased line. PurchasePrice freezes the
// unit price at checkout time; later catalog edits do not touch it.
type OrderItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"index;not null" json:"order_id"`
	VinylID       uint      `gorm:"index;not null" json:"vinyl_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	PurchasePrice float64   `gorm:"type:decimal(10,2);not null" json:"purchase_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "orders_items"
}
