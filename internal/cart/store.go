// Package cart keeps the in-memory cart the user builds while browsing.
// All mutation is synchronous and immediately visible to subsequent reads;
// the TUI's single-threaded update loop is the only caller.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/VanceeBassem/ecommerce-frontend/internal/catalog"
)

// Line is one cart entry: a product snapshot plus a quantity of at least 1.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal returns price × quantity for this line at full precision.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store maps product IDs to cart lines. The invariant is that no stored line
// ever has a quantity below 1 and every key matches its line's product ID.
type Store struct {
	lines map[int]Line
}

// New returns an empty cart.
func New() *Store {
	return &Store{lines: map[int]Line{}}
}

// Add increments the quantity for the product, creating the line at
// quantity 1 when it is not in the cart yet.
func (s *Store) Add(p catalog.Product) {
	line, ok := s.lines[p.ID]
	if !ok {
		s.lines[p.ID] = Line{Product: p, Quantity: 1}
		return
	}
	line.Quantity++
	s.lines[p.ID] = line
}

// Remove decrements the quantity for the product and deletes the line when
// the quantity would drop below 1. Removing an absent product is a no-op so
// counts can never go negative.
func (s *Store) Remove(p catalog.Product) {
	line, ok := s.lines[p.ID]
	if !ok {
		return
	}
	if line.Quantity <= 1 {
		delete(s.lines, p.ID)
		return
	}
	line.Quantity--
	s.lines[p.ID] = line
}

// SetQuantity sets the quantity for a product directly. Quantities below 1
// and unknown products are rejected as no-ops; the UI never produces them
// through a valid interaction.
func (s *Store) SetQuantity(id, n int) bool {
	if n < 1 {
		return false
	}
	line, ok := s.lines[id]
	if !ok {
		return false
	}
	line.Quantity = n
	s.lines[id] = line
	return true
}

// Quantity returns the current quantity for a product, zero when absent.
func (s *Store) Quantity(id int) int {
	return s.lines[id].Quantity
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = map[int]Line{}
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns the cart contents sorted by product ID for stable display.
func (s *Store) Lines() []Line {
	out := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Product.ID < out[j].Product.ID
	})
	return out
}
