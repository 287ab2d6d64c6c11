// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// ShopCartItem is the server-side cart mirror row for authenticated
// users. Checkout clears these rows best-effort once an order lands.
type ShopCartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_shop_car_user_vinyl" json:"user_id"`
	VinylID   uint      `gorm:"not null;uniqueIndex:idx_shop_car_user_vinyl" json:"vinyl_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (ShopCartItem) TableName() string {
	return "shop_car"
}
