// internal/domain/order/errors.go
package order

import "errors"

// ErrEmptyCart is returned when a checkout arrives with no items
var ErrEmptyCart = errors.New("cart is empty")

// ErrTotalMismatch is returned when the submitted total does not match
// the total recomputed from current catalog prices
var ErrTotalMismatch = errors.New("order total mismatch")
