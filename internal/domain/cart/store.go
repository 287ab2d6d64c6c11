// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
)

// StorageKey is the key a snapshot is persisted under when the caller
// does not scope the store to a session of its own.
const StorageKey = "cart"

// ErrKeyNotFound is returned by a Backend when no snapshot exists yet
var ErrKeyNotFound = errors.New("cart: key not found")

// Backend is the persistence port for cart snapshots. Implementations
// only need durable get/set of an opaque string.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Item is one cart line: the product id, the display fields cached at
// add-time, the quantity, and the stock ceiling copied from the product
// when the line was created. The ceiling is a point-in-time snapshot and
// goes stale on purpose; checkout re-validates against the database.
type Item struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Price    float64 `json:"price"`
	Img      string  `json:"img"`
	Slug     string  `json:"slug"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
}

// Store is a snapshot cart: every mutation rewrites the whole cart under
// one key. Mutations never fail outward; a broken backend is logged and
// the in-memory state stays authoritative for the session.
type Store struct {
	backend Backend
	key     string
	logger  *logrus.Logger
	items   []Item
}

// NewStore creates a cart store bound to a snapshot key and loads any
// existing snapshot. An empty key falls back to StorageKey.
func NewStore(ctx context.Context, backend Backend, key string, logger *logrus.Logger) *Store {
	if key == "" {
		key = StorageKey
	}
	s := &Store{
		backend: backend,
		key:     key,
		logger:  logger,
	}
	s.load(ctx)
	return s
}

// AddToCart adds one unit of the given product. An existing line grows by
// one only while below its stock ceiling; a new line starts at quantity 1.
// The quantity argument mirrors the public contract but additions always
// step one unit at a time. Reports whether the cart changed.
func (s *Store) AddToCart(ctx context.Context, item Item, quantity int) bool {
	for i := range s.items {
		if s.items[i].ID != item.ID {
			continue
		}
		if s.items[i].Quantity >= item.Stock {
			return false
		}
		s.items[i].Quantity++
		s.persist(ctx)
		return true
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	s.persist(ctx)
	return true
}

// UpdateQuantity replaces a line's quantity. A quantity below 1 removes
// the line. A missing line or a quantity above the line's stock ceiling
// is rejected without mutation.
func (s *Store) UpdateQuantity(ctx context.Context, id uint, quantity int) bool {
	if quantity < 1 {
		s.RemoveFromCart(ctx, id)
		return true
	}

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if quantity > s.items[i].Stock {
			return false
		}
		s.items[i].Quantity = quantity
		s.persist(ctx)
		return true
	}

	return false
}

// RemoveFromCart drops a line unconditionally; absent ids are a no-op
func (s *Store) RemoveFromCart(ctx context.Context, id uint) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// ClearCart resets the cart to empty
func (s *Store) ClearCart(ctx context.Context) {
	s.items = nil
	s.persist(ctx)
}

// Total folds price times quantity over the current lines
func (s *Store) Total() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count folds quantities over the current lines
func (s *Store) Count() int {
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Items returns a copy of the current lines in insertion order
func (s *Store) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) load(ctx context.Context) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("Failed to load cart snapshot, starting empty")
		return
	}

	var items []Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("Discarding corrupt cart snapshot")
		return
	}
	s.items = items
}

func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.WithError(err).WithField("key", s.key).Error("Failed to encode cart snapshot")
		return
	}

	if err := s.backend.Set(ctx, s.key, string(data)); err != nil {
		s.logger.WithError(err).WithField("key", s.key).Error("Failed to persist cart snapshot")
	}
}
