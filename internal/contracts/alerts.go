package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderAlert is a display-ready annotation of one alerted order.
type OrderAlert struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Description   string          `json:"description"`
	Department    string          `json:"department"`
	Supplier      string          `json:"supplier"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	DaysOverdue   int             `json:"days_overdue,omitempty"`
	DaysRemaining int             `json:"days_remaining,omitempty"`
}

// SupplierAlert annotates a low-performing supplier group.
type SupplierAlert struct {
	Supplier     string  `json:"supplier"`
	SuccessRate  float64 `json:"success_rate"`
	TotalOrders  int     `json:"total_orders"`
	DelayedCount int     `json:"delayed_count"`
}

// AlertSummary is the immutable output of one engine invocation:
// one input snapshot, one reference date.
type AlertSummary struct {
	ReferenceDate time.Time `json:"reference_date"`

	DelayedOrders          []OrderAlert    `json:"delayed_orders"`
	UpcomingOrders         []OrderAlert    `json:"upcoming_orders"`
	CriticalOrders         []OrderAlert    `json:"critical_orders"`
	LowPerformingSuppliers []SupplierAlert `json:"low_performing_suppliers"`

	// Total is the literal sum of the four category sizes. An order can
	// appear in both delayed and critical, and the sum mixes order counts
	// with supplier counts; the badge consumer depends on exactly this
	// number, so it is kept as-is. Use Counts() for per-category figures.
	Total int `json:"total"`
}

// AlertCounts carries the per-category sizes for the dashboard header.
type AlertCounts struct {
	Delayed                int `json:"delayed"`
	Upcoming               int `json:"upcoming"`
	Critical               int `json:"critical"`
	LowPerformingSuppliers int `json:"low_performing_suppliers"`
	Total                  int `json:"total"`
}

// Counts returns the category sizes of the summary
func (s *AlertSummary) Counts() AlertCounts {
	return AlertCounts{
		Delayed:                len(s.DelayedOrders),
		Upcoming:               len(s.UpcomingOrders),
		Critical:               len(s.CriticalOrders),
		LowPerformingSuppliers: len(s.LowPerformingSuppliers),
		Total:                  s.Total,
	}
}

// IsEmpty reports whether the summary carries no alerts at all
func (s *AlertSummary) IsEmpty() bool {
	return s.Total == 0
}
