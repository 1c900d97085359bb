package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel maps the ERP product master table. The ERP owns these rows;
// this agent only reads them.
type ProductModel struct {
	ID        int64           `gorm:"column:id;primaryKey"`
	Code      string          `gorm:"column:code"`    // internal product code
	Barcode   string          `gorm:"column:barcode"` // external SKU
	Name      string          `gorm:"column:name"`
	SalePrice decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string { return "products" }

// LocationStockModel maps per-location stock rows. Quantities may go negative
// upstream through data-entry inconsistencies; readers clamp them to zero.
type LocationStockModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ProductID  int64     `gorm:"column:product_id;index"`
	LocationID int64     `gorm:"column:location_id"`
	Quantity   int64     `gorm:"column:quantity"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for LocationStockModel
func (LocationStockModel) TableName() string { return "location_stocks" }

// OrderModel maps the ERP order header table. Identifiers are allocated by
// this agent under a locking read, never by a database sequence.
type OrderModel struct {
	OrderID        int64           `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	SequenceNumber int64           `gorm:"column:sequence_number"`
	CustomerName   string          `gorm:"column:customer_name;size:100"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2)"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

// TableName returns the table name for OrderModel
func (OrderModel) TableName() string { return "orders" }

// OrderLineModel maps order line rows, keyed by (order_id, line_number).
type OrderLineModel struct {
	OrderID     int64           `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	LineNumber  int             `gorm:"column:line_number;primaryKey;autoIncrement:false"`
	ProductCode string          `gorm:"column:product_code"`
	Description string          `gorm:"column:description"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(12,3)"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(14,2)"`
}

// TableName returns the table name for OrderLineModel
func (OrderLineModel) TableName() string { return "order_lines" }
