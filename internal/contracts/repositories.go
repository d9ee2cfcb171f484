package contracts

import (
	"context"
)

// Repository interfaces are defined here and implemented by the
// internal/orders and internal/suppliers packages.

// OrderRepository supplies raw purchase order snapshots. The engine
// always works from the full snapshot: delivered rows feed the supplier
// reliability denominators and the value threshold.
type OrderRepository interface {
	// ListAll returns every order, delivered or not
	ListAll(ctx context.Context) ([]RawOrder, error)
}

// SupplierRepository supplies supplier reference data
type SupplierRepository interface {
	ListAll(ctx context.Context) ([]Supplier, error)
}
