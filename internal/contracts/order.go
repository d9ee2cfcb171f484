package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawOrder is a purchase order exactly as it leaves the legacy store.
// Date, flag and amount columns are text there, and any non-identity
// field may be empty; the alerts normalizer turns this into an Order.
type RawOrder struct {
	ID            int64  `json:"id"`
	OrderNumber   string `json:"order_number"`
	RequestNumber string `json:"request_number"`

	Department   string `json:"department"`
	Description  string `json:"description"`
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`

	RequestedQty string `json:"requested_qty"`
	DeliveredQty string `json:"delivered_qty"`
	PendingQty   string `json:"pending_qty"`
	Amount       string `json:"amount"`

	RequestedDate       string `json:"requested_date"`
	OrderDate           string `json:"order_date"`
	PromisedDate        string `json:"promised_date"`
	ContractualDeadline string `json:"contractual_deadline"`

	Delivered string `json:"delivered"`
}

// Order is the canonical in-memory purchase order. Derived fields
// (DueDate, State, day deltas) are computed by the alert engine for one
// invocation and never written back to the store.
type Order struct {
	ID            int64
	OrderNumber   string
	RequestNumber string

	Department   string
	Description  string
	SupplierID   string
	SupplierName string

	RequestedQty decimal.Decimal
	DeliveredQty decimal.Decimal
	PendingQty   decimal.Decimal
	Amount       decimal.Decimal

	RequestedDate       *time.Time
	OrderDate           *time.Time
	PromisedDate        *time.Time
	ContractualDeadline *time.Time

	Delivered bool

	// Derived
	DueDate       *time.Time
	State         OrderState
	DaysOverdue   int
	DaysRemaining int
}

// OrderState classifies an order against a reference date.
// Evaluated fresh on every engine call, never persisted.
type OrderState string

const (
	StateDelivered       OrderState = "DELIVERED"
	StatePendingOnTime   OrderState = "PENDING_ON_TIME"
	StatePendingUpcoming OrderState = "PENDING_UPCOMING"
	StatePendingDelayed  OrderState = "PENDING_DELAYED"
	StatePendingUndated  OrderState = "PENDING_UNDATED"
)

// IsPending reports whether the order still awaits delivery,
// either by flag or by remaining quantity.
func (o *Order) IsPending() bool {
	return !o.Delivered || o.PendingQty.IsPositive()
}

// IsDelayed reports whether the order is pending past its due date.
// Holds the invariant delayed ⇒ pending; undated orders are never delayed.
func (o *Order) IsDelayed() bool {
	return o.State == StatePendingDelayed
}
