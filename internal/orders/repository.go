package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dportela/procura/backend/internal/contracts"
)

// Repository implements contracts.OrderRepository against the legacy
// purchase order table. The date, flag and amount columns there are
// text (years of spreadsheet imports); rows come out raw and the alert
// normalizer does the coercion.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new order repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `
	id,
	COALESCE(order_number, ''),
	COALESCE(request_number, ''),
	COALESCE(department, ''),
	COALESCE(description, ''),
	COALESCE(supplier_id, ''),
	COALESCE(supplier_name, ''),
	COALESCE(requested_qty, ''),
	COALESCE(delivered_qty, ''),
	COALESCE(pending_qty, ''),
	COALESCE(amount, ''),
	COALESCE(requested_date, ''),
	COALESCE(order_date, ''),
	COALESCE(promised_date, ''),
	COALESCE(contractual_deadline, ''),
	COALESCE(delivered, '')
`

// ListAll returns every purchase order, delivered or not
func (r *Repository) ListAll(ctx context.Context) ([]contracts.RawOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM compras.purchase_orders
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrders(rows rowScanner) ([]contracts.RawOrder, error) {
	orders := make([]contracts.RawOrder, 0)
	for rows.Next() {
		var o contracts.RawOrder
		err := rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.RequestNumber,
			&o.Department,
			&o.Description,
			&o.SupplierID,
			&o.SupplierName,
			&o.RequestedQty,
			&o.DeliveredQty,
			&o.PendingQty,
			&o.Amount,
			&o.RequestedDate,
			&o.OrderDate,
			&o.PromisedDate,
			&o.ContractualDeadline,
			&o.Delivered,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate orders: %w", rows.Err())
	}

	return orders, nil
}
