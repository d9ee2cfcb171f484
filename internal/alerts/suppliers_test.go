package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dportela/procura/backend/internal/contracts"
)

func TestSupplierLabelResolution(t *testing.T) {
	idx := newSupplierIndex([]contracts.Supplier{
		{ID: "7", Name: "Parafusos Ltda"},
		{ID: "9", Name: "Aços Norte"},
	})

	tests := []struct {
		name  string
		order contracts.Order
		want  string
	}{
		{
			name:  "resolved by id",
			order: contracts.Order{SupplierID: "7"},
			want:  "Parafusos Ltda",
		},
		{
			name:  "resolved by name",
			order: contracts.Order{SupplierName: "aços norte"},
			want:  "Aços Norte",
		},
		{
			name:  "raw name kept when not in reference table",
			order: contracts.Order{SupplierName: "Ferragem Sul"},
			want:  "Ferragem Sul",
		},
		{
			name:  "synthetic label from id",
			order: contracts.Order{SupplierID: "42"},
			want:  "Supplier 42",
		},
		{
			name:  "nothing to resolve",
			order: contracts.Order{},
			want:  "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.resolve(&tt.order))
		})
	}
}

func TestAggregateSuppliers(t *testing.T) {
	orders := []contracts.Order{
		{SupplierName: "Alpha", Delivered: true, State: contracts.StateDelivered},
		{SupplierName: "Alpha", Delivered: true, State: contracts.StateDelivered},
		{SupplierName: "Alpha", State: contracts.StatePendingDelayed},
		{SupplierName: "Beta", Delivered: true, State: contracts.StateDelivered},
		{SupplierName: "Beta", State: contracts.StatePendingUndated},
	}

	stats := AggregateSuppliers(orders, nil)

	require.Len(t, stats, 2)

	byLabel := make(map[string]contracts.SupplierStats)
	for _, s := range stats {
		byLabel[s.Label] = s
	}

	alpha := byLabel["Alpha"]
	assert.Equal(t, 3, alpha.TotalOrders)
	assert.Equal(t, 2, alpha.DeliveredCount)
	assert.Equal(t, 1, alpha.DelayedCount)
	assert.InDelta(t, 33.33, alpha.SuccessRate, 0.01)

	// The undated order still counts toward Beta's denominator
	beta := byLabel["Beta"]
	assert.Equal(t, 2, beta.TotalOrders)
	assert.Equal(t, 1, beta.DeliveredCount)
	assert.InDelta(t, 50.0, beta.SuccessRate, 0.01)
}

func TestAggregateSuppliersSortedBySuccessRate(t *testing.T) {
	orders := []contracts.Order{
		{SupplierName: "Good", Delivered: true, State: contracts.StateDelivered},
		{SupplierName: "Bad", State: contracts.StatePendingDelayed},
	}

	stats := AggregateSuppliers(orders, nil)

	require.Len(t, stats, 2)
	assert.Equal(t, "Bad", stats[0].Label)
	assert.Equal(t, "Good", stats[1].Label)
}

func TestSuccessRateClamped(t *testing.T) {
	tests := []struct {
		name                       string
		delivered, delayed, total  int
		want                       float64
	}{
		{"normal", 3, 1, 4, 50},
		{"clamped below", 0, 3, 3, 0},
		{"perfect", 5, 0, 5, 100},
		{"empty group", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, successRate(tt.delivered, tt.delayed, tt.total))
		})
	}
}

func TestFlagLowPerformingSampleGate(t *testing.T) {
	stats := []contracts.SupplierStats{
		// Terrible rate but only 4 orders: too few data points to flag
		{Label: "SmallSample", TotalOrders: 4, DeliveredCount: 0, DelayedCount: 0, SuccessRate: 0},
		// 5 orders with 60% success: flagged
		{Label: "Flagged", TotalOrders: 5, DeliveredCount: 5, DelayedCount: 2, SuccessRate: 60},
		// Enough orders, healthy rate: not flagged
		{Label: "Healthy", TotalOrders: 10, DeliveredCount: 9, DelayedCount: 0, SuccessRate: 90},
		// Exactly at the rate threshold: not flagged (strict less-than)
		{Label: "Boundary", TotalOrders: 8, SuccessRate: 70},
	}

	flagged := FlagLowPerforming(stats, 5, 70)

	require.Len(t, flagged, 1)
	assert.Equal(t, "Flagged", flagged[0].Supplier)
	assert.Equal(t, 60.0, flagged[0].SuccessRate)
	assert.Equal(t, 5, flagged[0].TotalOrders)
	assert.Equal(t, 2, flagged[0].DelayedCount)
}
