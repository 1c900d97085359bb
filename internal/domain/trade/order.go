package trade

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/sync-agent/internal/domain/shared"
)

const (
	// MaxCustomerNameLength bounds the customer name stored on the order header.
	MaxCustomerNameLength = 100

	// DefaultCustomerName is stored when the submitted name is blank.
	DefaultCustomerName = "Online Customer"
)

// RequestedItem is one line of an externally submitted order.
type RequestedItem struct {
	SKU       string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// OrderRequest is an externally submitted order prior to ingestion.
type OrderRequest struct {
	CustomerName string
	Items        []RequestedItem
}

// Validate checks the request shape before any transaction is opened.
func (r *OrderRequest) Validate() error {
	if r == nil {
		return shared.NewValidationError("Order request is empty")
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return shared.NewValidationError("Customer name is required")
	}
	if len(r.Items) == 0 {
		return shared.NewValidationError("Order must contain at least one item")
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.SKU) == "" {
			return shared.NewValidationError("Item SKU is required")
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewValidationError("Item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return shared.NewValidationError("Item unit price cannot be negative")
		}
	}
	return nil
}

// OrderLine is one persisted line of an order. Lines are created together
// with their order and never mutated independently.
type OrderLine struct {
	OrderID     int64
	LineNumber  int
	ProductCode string // internal code resolved from the requested SKU
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Order is a committed order header with its lines. The id and sequence are
// independent counters, each strictly greater than any previously assigned
// value.
type Order struct {
	ID           int64
	Sequence     int64
	CustomerName string
	Total        decimal.Decimal
	Lines        []OrderLine
	CreatedAt    time.Time
}

// NewOrder creates an order header with a sanitized customer name.
func NewOrder(id, sequence int64, customerName string) *Order {
	return &Order{
		ID:           id,
		Sequence:     sequence,
		CustomerName: SanitizeCustomerName(customerName),
		Total:        decimal.Zero,
		CreatedAt:    time.Now(),
	}
}

// AddLine appends a line with the next 1-based line number and adds its
// total to the order total. Lines keep the caller-supplied unit price; the
// canonical catalog price is not re-applied here.
func (o *Order) AddLine(productCode, description string, quantity, unitPrice decimal.Decimal) *OrderLine {
	lineTotal := quantity.Mul(unitPrice)
	line := OrderLine{
		OrderID:     o.ID,
		LineNumber:  len(o.Lines) + 1,
		ProductCode: productCode,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   lineTotal,
	}
	o.Lines = append(o.Lines, line)
	o.Total = o.Total.Add(lineTotal)
	return &o.Lines[len(o.Lines)-1]
}

// SanitizeCustomerName trims the name, substitutes the default placeholder
// for blank input, and truncates to MaxCustomerNameLength runes.
func SanitizeCustomerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCustomerName
	}
	runes := []rune(name)
	if len(runes) > MaxCustomerNameLength {
		return string(runes[:MaxCustomerNameLength])
	}
	return name
}
