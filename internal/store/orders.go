package store

import (
	"sync"
	"time"

	"github.com/shopbot/goshop/internal/domain"
)

// Orders is the simulated order database. Records only leave the store as
// deep copies; mutation happens exclusively through Update's mutator so
// callers never hold a reference into the map.
type Orders struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// NewOrders returns an empty order store.
func NewOrders() *Orders {
	return &Orders{orders: make(map[string]domain.Order)}
}

// Create persists a new order keyed by its id.
func (s *Orders) Create(order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.ID]; exists {
		return ErrDuplicateID
	}
	s.orders[order.ID] = order.Clone()
	return nil
}

// Get returns a deep copy of the order.
func (s *Orders) Get(orderID string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o.Clone(), nil
}

// List returns deep copies of every stored order. Iteration order is
// unspecified but each call is a consistent snapshot.
func (s *Orders) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

// Update applies mutate to a working copy of the order under the store lock
// and refreshes the last-updated timestamp before storing it back. A mutator
// error aborts the update with nothing applied.
func (s *Orders) Update(orderID string, mutate func(*domain.Order) error) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	working := o.Clone()
	if err := mutate(&working); err != nil {
		return domain.Order{}, err
	}
	working.UpdatedAt = time.Now()
	s.orders[orderID] = working
	return working.Clone(), nil
}

// Len reports the number of stored orders.
func (s *Orders) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
