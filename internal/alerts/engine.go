package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dportela/procura/backend/internal/contracts"
)

// ErrZeroReferenceDate signals a contract violation by the caller: the
// engine needs an explicit reference clock and a zero time is never one.
var ErrZeroReferenceDate = errors.New("reference date must not be zero")

// Engine computes one immutable alert summary from one order snapshot
// and one reference date. It holds no state between calls and performs
// no I/O, so concurrent invocations need no locking; data acquisition
// and cancellation are the caller's concern.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// NewEngine creates an engine with the given thresholds
func NewEngine(cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		cfg: cfg,
		log: log.With().Str("component", "alerts.engine").Logger(),
	}
}

// Evaluate runs the full pipeline: normalize, resolve due dates,
// classify, detect critical orders, aggregate suppliers, assemble.
// Malformed records never fail the call; the normalizer collapses them
// to safe defaults. The only error is a zero reference date.
func (e *Engine) Evaluate(ctx context.Context, rawOrders []contracts.RawOrder, suppliers []contracts.Supplier, today time.Time) (*contracts.AlertSummary, error) {
	if today.IsZero() {
		return nil, ErrZeroReferenceDate
	}
	today = truncateToDay(today)

	orders := NormalizeAll(rawOrders)

	for i := range orders {
		orders[i].DueDate = ResolveDueDate(&orders[i], e.cfg.FallbackLeadDays)
		Classify(&orders[i], today, e.cfg.HorizonDays)
	}

	idx := newSupplierIndex(suppliers)

	summary := &contracts.AlertSummary{
		ReferenceDate:          today,
		DelayedOrders:          make([]contracts.OrderAlert, 0),
		UpcomingOrders:         make([]contracts.OrderAlert, 0),
		CriticalOrders:         make([]contracts.OrderAlert, 0),
		LowPerformingSuppliers: make([]contracts.SupplierAlert, 0),
	}

	for i := range orders {
		o := &orders[i]
		switch o.State {
		case contracts.StatePendingDelayed:
			summary.DelayedOrders = append(summary.DelayedOrders, newOrderAlert(o, idx))
		case contracts.StatePendingUpcoming:
			summary.UpcomingOrders = append(summary.UpcomingOrders, newOrderAlert(o, idx))
		}
	}

	for _, i := range DetectCritical(orders, today, e.cfg.HorizonDays, e.cfg.CriticalPercentile) {
		summary.CriticalOrders = append(summary.CriticalOrders, newOrderAlert(&orders[i], idx))
	}

	stats := AggregateSuppliers(orders, suppliers)
	summary.LowPerformingSuppliers = FlagLowPerforming(stats, e.cfg.MinSample, e.cfg.LowPerformanceRate)

	// The badge total is the literal sum of category sizes, overlaps and
	// mixed units included. Kept for compatibility with every existing
	// consumer; Counts() exposes the pieces.
	summary.Total = len(summary.DelayedOrders) +
		len(summary.UpcomingOrders) +
		len(summary.CriticalOrders) +
		len(summary.LowPerformingSuppliers)

	e.log.Debug().
		Time("reference_date", today).
		Int("orders", len(orders)).
		Int("delayed", len(summary.DelayedOrders)).
		Int("upcoming", len(summary.UpcomingOrders)).
		Int("critical", len(summary.CriticalOrders)).
		Int("low_performing", len(summary.LowPerformingSuppliers)).
		Msg("summary computed")

	return summary, nil
}

// newOrderAlert builds the display annotation for one alerted order
func newOrderAlert(o *contracts.Order, idx supplierIndex) contracts.OrderAlert {
	return contracts.OrderAlert{
		ID:            o.ID,
		OrderNumber:   displayText(o.OrderNumber),
		Description:   displayText(o.Description),
		Department:    displayText(o.Department),
		Supplier:      idx.resolve(o),
		Amount:        o.Amount,
		DueDate:       o.DueDate,
		DaysOverdue:   o.DaysOverdue,
		DaysRemaining: o.DaysRemaining,
	}
}
