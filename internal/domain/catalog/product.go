package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a read-only snapshot of a catalog item, aggregated by SKU from
// the product master and its per-location stock rows. The ERP owns and
// mutates the underlying rows; this system only observes them.
type Product struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	TotalStock int64           `json:"stock"`
	Price      decimal.Decimal `json:"price"`
}

// Entry is the resolution of an external SKU to the ERP's internal product
// row, used when turning requested order items into order lines.
type Entry struct {
	InternalCode   string
	Description    string
	CanonicalPrice decimal.Decimal
}
