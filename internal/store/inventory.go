package store

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/shopbot/goshop/internal/domain"
)

var (
	// ErrNotFound is returned for an unknown product or order id.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a decrement exceeds current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateID is returned when an order id is already taken.
	ErrDuplicateID = errors.New("duplicate id")
)

// Inventory maps product ids to stock and price. All check-then-act
// sequences run under one lock so stock never goes negative regardless of
// request interleaving.
type Inventory struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewInventory seeds an inventory from the catalog.
func NewInventory(catalog []domain.Product) *Inventory {
	inv := &Inventory{products: make(map[string]domain.Product, len(catalog))}
	for _, p := range catalog {
		inv.products[p.ID] = p
	}
	return inv
}

// Get returns a copy of the product record.
func (inv *Inventory) Get(productID string) (domain.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	p, ok := inv.products[productID]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

// GetStock returns current quantity and unit price for a product.
func (inv *Inventory) GetStock(productID string) (int, decimal.Decimal, error) {
	p, err := inv.Get(productID)
	if err != nil {
		return 0, decimal.Decimal{}, err
	}
	return p.Stock, p.Price, nil
}

// DecrementStock atomically reduces stock by quantity and returns the new
// level for gauge reporting.
func (inv *Inventory) DecrementStock(productID string, quantity int) (int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	p, ok := inv.products[productID]
	if !ok {
		return 0, ErrNotFound
	}
	if p.Stock < quantity {
		return 0, ErrInsufficientStock
	}
	p.Stock -= quantity
	inv.products[productID] = p
	return p.Stock, nil
}

// DecrementAll applies every decrement in one critical section, all or
// nothing: if any product is missing or short the whole batch is rejected
// and no stock changes. Returns the new stock level per product.
func (inv *Inventory) DecrementAll(quantities map[string]int) (map[string]int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for id, qty := range quantities {
		p, ok := inv.products[id]
		if !ok {
			return nil, ErrNotFound
		}
		if p.Stock < qty {
			return nil, ErrInsufficientStock
		}
	}

	levels := make(map[string]int, len(quantities))
	for id, qty := range quantities {
		p := inv.products[id]
		p.Stock -= qty
		inv.products[id] = p
		levels[id] = p.Stock
	}
	return levels, nil
}

// Snapshot returns a copy of every product, for gauge seeding and tests.
func (inv *Inventory) Snapshot() []domain.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		out = append(out, p)
	}
	return out
}
