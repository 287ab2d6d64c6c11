// internal/domain/catalog/errors.go
package catalog

import "fmt"

// VinylNotFoundError is returned when a catalog lookup references an
// unknown vinyl id
type VinylNotFoundError struct {
	ID uint
}

func (e *VinylNotFoundError) Error() string {
	return fmt.Sprintf("vinyl with id %d not found", e.ID)
}

// InsufficientStockError is returned when a requested quantity exceeds the
// stock currently on hand
type InsufficientStockError struct {
	ID        uint
	Title     string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d", e.Title, e.Available, e.Requested)
}
