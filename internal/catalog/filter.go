package catalog

import (
	"errors"
	"net/url"
	"strconv"
)

// Price slider bounds. The backend treats prices outside this window as
// unfiltered, so the client never sends values beyond it.
const (
	PriceFloor   = 0
	PriceCeiling = 300
)

// ErrInvalidPriceRange reports a malformed price range (out of bounds or
// min > max). Callers keep the previous range when they see it.
var ErrInvalidPriceRange = errors.New("catalog: invalid price range")

// CategoryOption pairs a display label with the machine-readable code the
// backend filters on.
type CategoryOption struct {
	Label string
	Code  string
}

// categoryOptions is the fixed enumeration of filterable categories.
var categoryOptions = []CategoryOption{
	{Label: "T-shirts", Code: "t-shirt"},
	{Label: "Polo", Code: "polo"},
	{Label: "Jeans", Code: "jeans"},
	{Label: "Shirts", Code: "shirt"},
}

// CategoryOptions returns the filterable categories in display order.
func CategoryOptions() []CategoryOption {
	out := make([]CategoryOption, len(categoryOptions))
	copy(out, categoryOptions)
	return out
}

func knownCategory(code string) bool {
	for _, opt := range categoryOptions {
		if opt.Code == code {
			return true
		}
	}
	return false
}

// FilterState is the user-selected price range and category subset applied to
// catalog queries. The zero value is not ready for use; call NewFilterState.
type FilterState struct {
	MinPrice int
	MaxPrice int

	// selected keeps category codes in insertion order so the query built
	// from identical state is identical, which keeps tests deterministic.
	selected []string
}

// NewFilterState returns the default filter: full price range, no categories.
func NewFilterState() FilterState {
	return FilterState{MinPrice: PriceFloor, MaxPrice: PriceCeiling}
}

// Reset restores the default price range and clears all categories.
func (f *FilterState) Reset() {
	f.MinPrice = PriceFloor
	f.MaxPrice = PriceCeiling
	f.selected = nil
}

// SetPriceRange updates the range after validating it against the slider
// bounds. The previous range is kept on error.
func (f *FilterState) SetPriceRange(min, max int) error {
	if min < PriceFloor || max > PriceCeiling || min > max {
		return ErrInvalidPriceRange
	}
	f.MinPrice = min
	f.MaxPrice = max
	return nil
}

// ToggleCategory flips membership for a category code: present means remove,
// absent means add. Unknown codes are ignored and reported as false.
func (f *FilterState) ToggleCategory(code string) bool {
	if !knownCategory(code) {
		return false
	}
	for i, existing := range f.selected {
		if existing == code {
			f.selected = append(f.selected[:i], f.selected[i+1:]...)
			return true
		}
	}
	f.selected = append(f.selected, code)
	return true
}

// Clone returns a copy that does not share the category slice, so a snapshot
// handed to an in-flight request is immune to later toggles.
func (f FilterState) Clone() FilterState {
	out := f
	out.selected = make([]string, len(f.selected))
	copy(out.selected, f.selected)
	return out
}

// Selected reports whether a category code is part of the filter.
func (f FilterState) Selected(code string) bool {
	for _, existing := range f.selected {
		if existing == code {
			return true
		}
	}
	return false
}

// Categories returns the selected category codes in insertion order.
func (f FilterState) Categories() []string {
	out := make([]string, len(f.selected))
	copy(out, f.selected)
	return out
}

// Query maps the filter to the catalog endpoint's query parameters:
// min_price, max_price and one categories entry per selected code.
func (f FilterState) Query() url.Values {
	values := url.Values{}
	values.Set("min_price", strconv.Itoa(f.MinPrice))
	values.Set("max_price", strconv.Itoa(f.MaxPrice))
	for _, code := range f.selected {
		values.Add("categories", code)
	}
	return values
}
