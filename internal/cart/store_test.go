package cart

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/VanceeBassem/ecommerce-frontend/internal/catalog"
)

func product(id int, name, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "t-shirt",
		Stock:    catalog.DefaultStock,
	}
}

func TestAddCreatesLineAtOne(t *testing.T) {
	s := New()
	p := product(1, "Gradient Graphic T-shirt", "10.00")
	s.Add(p)
	if got := s.Quantity(1); got != 1 {
		t.Fatalf("quantity after first add = %d, want 1", got)
	}
	s.Add(p)
	s.Add(p)
	if got := s.Quantity(1); got != 3 {
		t.Fatalf("quantity after three adds = %d, want 3", got)
	}
}

func TestRemoveNeverGoesNegative(t *testing.T) {
	s := New()
	p := product(7, "Skinny Fit Jeans", "55.50")

	// Removing from an absent product is a no-op.
	s.Remove(p)
	if !s.IsEmpty() {
		t.Fatalf("remove on empty cart must be a no-op")
	}

	s.Add(p)
	s.Remove(p)
	if q := s.Quantity(7); q != 0 {
		t.Fatalf("quantity after add+remove = %d, want 0", q)
	}
	if !s.IsEmpty() {
		t.Fatalf("line must be deleted when quantity would drop below 1")
	}

	// Arbitrary add/remove sequences keep the invariant.
	for i := 0; i < 10; i++ {
		s.Remove(p)
	}
	if q := s.Quantity(7); q != 0 {
		t.Fatalf("quantity = %d after repeated removes, want 0", q)
	}
}

func TestAddThenRemoveRestoresPriorState(t *testing.T) {
	s := New()
	s.Add(product(1, "Polo with Contrast Trims", "30.00"))
	before := s.Lines()

	extra := product(2, "Checkered Shirt", "42.00")
	s.Add(extra)
	s.Remove(extra)

	if !reflect.DeepEqual(s.Lines(), before) {
		t.Fatalf("add then remove must restore prior entries, got %v want %v", s.Lines(), before)
	}
}

func TestSetQuantityRejectsBelowOne(t *testing.T) {
	s := New()
	s.Add(product(3, "Vertical Striped Shirt", "21.20"))
	if s.SetQuantity(3, 0) {
		t.Fatalf("SetQuantity(3, 0) must be rejected")
	}
	if got := s.Quantity(3); got != 1 {
		t.Fatalf("rejected SetQuantity must keep quantity, got %d", got)
	}
	if s.SetQuantity(99, 2) {
		t.Fatalf("SetQuantity on an absent product must be rejected")
	}
	if !s.SetQuantity(3, 5) {
		t.Fatalf("valid SetQuantity must succeed")
	}
	if got := s.Quantity(3); got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(product(1, "A", "1.00"))
	s.Add(product(2, "B", "2.00"))
	s.Clear()
	if !s.IsEmpty() || s.Len() != 0 {
		t.Fatalf("clear must empty the cart")
	}
}

func TestLinesSortedByProductID(t *testing.T) {
	s := New()
	s.Add(product(9, "C", "3.00"))
	s.Add(product(2, "A", "1.00"))
	s.Add(product(5, "B", "2.00"))
	lines := s.Lines()
	ids := []int{lines[0].Product.ID, lines[1].Product.ID, lines[2].Product.ID}
	if !reflect.DeepEqual(ids, []int{2, 5, 9}) {
		t.Fatalf("lines not sorted by ID: %v", ids)
	}
}

func TestLineSubtotal(t *testing.T) {
	l := Line{Product: product(1, "A", "10.00"), Quantity: 3}
	if got := l.Subtotal(); !got.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("subtotal = %s, want 30.00", got)
	}
}
