package contracts

// Supplier is a supplier reference row used for name resolution.
type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// SupplierStats holds per-supplier reliability figures for one engine
// invocation. Transient: grouped from the order snapshot, never persisted.
type SupplierStats struct {
	Label          string  `json:"supplier"`
	TotalOrders    int     `json:"total_orders"`
	DeliveredCount int     `json:"delivered_count"`
	DelayedCount   int     `json:"delayed_count"`
	SuccessRate    float64 `json:"success_rate"` // percent, clamped to [0, 100]
}
