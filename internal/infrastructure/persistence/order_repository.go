package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/sync-agent/internal/domain/catalog"
	"github.com/erp/sync-agent/internal/domain/shared"
	"github.com/erp/sync-agent/internal/domain/trade"
)

// maxAllocationAttempts bounds the retries when a concurrent ingestion wins
// the same order id. The locking reads serialize allocators while rows exist,
// but an empty table gives FOR UPDATE nothing to lock, and under READ
// COMMITTED a blocked reader can re-read the pre-commit maximum. The primary
// key rejects the duplicate; the transaction is then retried as a whole.
const maxAllocationAttempts = 3

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateOrder resolves each requested item, allocates the next order id and
// sequence under a locking read, and writes header plus lines in one
// transaction. Any failure rolls everything back; no partial rows persist.
// A duplicate-key rejection of the allocated id retries the whole
// transaction up to maxAllocationAttempts times.
func (r *GormOrderRepository) CreateOrder(ctx context.Context, req *trade.OrderRequest) (*trade.Order, error) {
	var created *trade.Order
	var err error

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		created, err = r.createOrderOnce(ctx, req)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return created, err
		}
	}
	return nil, fmt.Errorf("allocation retries exhausted: %w", err)
}

func (r *GormOrderRepository) createOrderOnce(ctx context.Context, req *trade.OrderRequest) (*trade.Order, error) {
	var created *trade.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Resolve every SKU before touching the order tables so an
		// unresolvable item aborts the whole submission.
		entries := make([]catalog.Entry, 0, len(req.Items))
		for _, item := range req.Items {
			entry, err := resolveSKU(tx, item.SKU)
			if err != nil {
				return err
			}
			entries = append(entries, *entry)
		}

		// The locking reads block a second concurrent allocation until this
		// transaction commits or rolls back, giving a total order over id
		// assignment.
		orderID, err := nextOrderID(tx)
		if err != nil {
			return fmt.Errorf("allocate order id: %w", err)
		}
		sequence, err := nextSequence(tx)
		if err != nil {
			return fmt.Errorf("allocate sequence: %w", err)
		}

		order := trade.NewOrder(orderID, sequence, req.CustomerName)
		for i, item := range req.Items {
			order.AddLine(entries[i].InternalCode, entries[i].Description, item.Quantity, item.UnitPrice)
		}

		header := OrderModel{
			OrderID:        order.ID,
			SequenceNumber: order.Sequence,
			CustomerName:   order.CustomerName,
			TotalAmount:    order.Total,
			CreatedAt:      order.CreatedAt,
		}
		if err := tx.Create(&header).Error; err != nil {
			return fmt.Errorf("insert order header: %w", err)
		}

		lines := make([]OrderLineModel, 0, len(order.Lines))
		for _, line := range order.Lines {
			lines = append(lines, OrderLineModel{
				OrderID:     line.OrderID,
				LineNumber:  line.LineNumber,
				ProductCode: line.ProductCode,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				LineTotal:   line.LineTotal,
			})
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("insert order lines: %w", err)
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveSKU maps an external SKU to the ERP's internal product row
func resolveSKU(tx *gorm.DB, sku string) (*catalog.Entry, error) {
	var product ProductModel
	if err := tx.Where("barcode = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewProductNotFoundError(sku)
		}
		return nil, fmt.Errorf("resolve sku %q: %w", sku, err)
	}
	return &catalog.Entry{
		InternalCode:   product.Code,
		Description:    product.Name,
		CanonicalPrice: product.SalePrice,
	}, nil
}

// nextOrderID returns max(order_id)+1 under a row lock held until the
// surrounding transaction completes.
func nextOrderID(tx *gorm.DB) (int64, error) {
	var ids []int64
	err := tx.Model(&OrderModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("order_id DESC").
		Limit(1).
		Pluck("order_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 1, nil
	}
	return ids[0] + 1, nil
}

// nextSequence returns max(sequence_number)+1; the sequence is an independent
// counter and its maximum may sit on a different row than the id maximum.
func nextSequence(tx *gorm.DB) (int64, error) {
	var sequences []int64
	err := tx.Model(&OrderModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("sequence_number DESC").
		Limit(1).
		Pluck("sequence_number", &sequences).Error
	if err != nil {
		return 0, err
	}
	if len(sequences) == 0 {
		return 1, nil
	}
	return sequences[0] + 1, nil
}
