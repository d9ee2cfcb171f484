package suppliers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dportela/procura/backend/internal/contracts"
)

// Repository implements contracts.SupplierRepository
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new supplier repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAll returns the supplier reference table used for name resolution
func (r *Repository) ListAll(ctx context.Context) ([]contracts.Supplier, error) {
	query := `
		SELECT
			id::text,
			COALESCE(name, ''),
			COALESCE(city, ''),
			COALESCE(state, '')
		FROM compras.suppliers
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]contracts.Supplier, 0)
	for rows.Next() {
		var s contracts.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", rows.Err())
	}

	return suppliers, nil
}
