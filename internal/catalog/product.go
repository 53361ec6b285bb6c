// Package catalog holds the product entity and the filter state that drives
// catalog queries. Products are immutable once fetched; the displayed catalog
// is always replaced wholesale by the latest response.
package catalog

import "github.com/shopspring/decimal"

// DefaultStock is shown when the backend omits a stock count for a product.
const DefaultStock = 25

// Product is one purchasable item as returned by the catalog endpoint.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	ImageURL string          `json:"image_url"`
	Stock    int             `json:"stock"`
}
