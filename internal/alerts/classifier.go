package alerts

import (
	"time"

	"github.com/dportela/procura/backend/internal/contracts"
)

// truncateToDay maps a time to its civil date as midnight UTC. All
// classification happens at civil-date granularity, so an order due
// today at 09:00 is not late at 10:00. Pinning one location matters:
// due dates parse into UTC while the reference clock carries the host
// zone, and mixed-zone midnights would shift day boundaries.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole days from a to b, both taken as civil dates
func daysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(b.Sub(a).Hours() / 24)
}

// Classify assigns the order state against the reference date and fills
// in the day deltas used for display. The due date must already be
// resolved; today must already be truncated.
//
// Rules, in order:
//   - delivered with nothing left pending → DELIVERED
//   - pending without a due date → PENDING_UNDATED
//   - due before today → PENDING_DELAYED
//   - due within today..today+horizon (inclusive) → PENDING_UPCOMING
//   - otherwise → PENDING_ON_TIME
func Classify(o *contracts.Order, today time.Time, horizonDays int) {
	o.DaysOverdue = 0
	o.DaysRemaining = 0

	if o.Delivered && !o.PendingQty.IsPositive() {
		o.State = contracts.StateDelivered
		return
	}

	if o.DueDate == nil {
		o.State = contracts.StatePendingUndated
		return
	}

	due := truncateToDay(*o.DueDate)
	horizon := today.AddDate(0, 0, horizonDays)

	switch {
	case due.Before(today):
		o.State = contracts.StatePendingDelayed
		o.DaysOverdue = daysBetween(due, today)
	case !due.After(horizon):
		o.State = contracts.StatePendingUpcoming
		o.DaysRemaining = daysBetween(today, due)
	default:
		o.State = contracts.StatePendingOnTime
	}
}
