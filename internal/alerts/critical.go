package alerts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dportela/procura/backend/internal/contracts"
)

// minPercentileSample is the order count below which the percentile is
// too unstable to use; the maximum amount gates instead.
const minPercentileSample = 4

// valueThreshold computes the amount percentile across the whole
// snapshot, delivered orders included, matching how the exposure
// threshold has always been derived.
func valueThreshold(orders []contracts.Order, percentile int) decimal.Decimal {
	if len(orders) == 0 {
		return decimal.Zero
	}

	amounts := make([]decimal.Decimal, len(orders))
	for i := range orders {
		amounts[i] = orders[i].Amount
	}

	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].LessThan(amounts[j])
	})

	if len(amounts) < minPercentileSample {
		return amounts[len(amounts)-1]
	}

	idx := (len(amounts) - 1) * percentile / 100
	return amounts[idx]
}

// DetectCritical flags still-pending orders that combine high monetary
// exposure with an imminent due date: amount at or above the value
// threshold and due inside the horizon window. Already-overdue orders
// qualify too; criticality is independent of delay status.
func DetectCritical(orders []contracts.Order, today time.Time, horizonDays, percentile int) []int {
	threshold := valueThreshold(orders, percentile)
	horizon := today.AddDate(0, 0, horizonDays)

	critical := make([]int, 0)
	for i := range orders {
		o := &orders[i]

		if !o.IsPending() {
			continue
		}
		if o.DueDate == nil {
			continue
		}
		if o.Amount.LessThan(threshold) {
			continue
		}
		if truncateToDay(*o.DueDate).After(horizon) {
			continue
		}

		critical = append(critical, i)
	}

	return critical
}
