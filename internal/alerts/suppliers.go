package alerts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dportela/procura/backend/internal/contracts"
)

// supplierIndex resolves supplier labels from the reference table
type supplierIndex struct {
	byID   map[string]string
	byName map[string]string
}

func newSupplierIndex(suppliers []contracts.Supplier) supplierIndex {
	idx := supplierIndex{
		byID:   make(map[string]string, len(suppliers)),
		byName: make(map[string]string, len(suppliers)),
	}
	for _, s := range suppliers {
		if s.ID != "" && s.Name != "" {
			idx.byID[s.ID] = s.Name
		}
		if s.Name != "" {
			idx.byName[strings.ToLower(s.Name)] = s.Name
		}
	}
	return idx
}

// resolve returns the display label for an order's supplier:
// reference table by id, then by name, then the raw name from the
// order, then a synthetic "Supplier <id>" label, then "N/A".
func (idx supplierIndex) resolve(o *contracts.Order) string {
	if o.SupplierID != "" {
		if name, ok := idx.byID[o.SupplierID]; ok {
			return name
		}
	}
	if o.SupplierName != "" {
		if name, ok := idx.byName[strings.ToLower(o.SupplierName)]; ok {
			return name
		}
		return o.SupplierName
	}
	if o.SupplierID != "" {
		return fmt.Sprintf("Supplier %s", o.SupplierID)
	}
	return "N/A"
}

// AggregateSuppliers groups classified orders by resolved supplier label
// and computes reliability figures per group. Every order counts toward
// its supplier's total, including undated ones that never make an alert
// list. Output is sorted by ascending success rate, then label, so
// results are deterministic.
func AggregateSuppliers(orders []contracts.Order, suppliers []contracts.Supplier) []contracts.SupplierStats {
	idx := newSupplierIndex(suppliers)

	groups := make(map[string]*contracts.SupplierStats)
	for i := range orders {
		label := idx.resolve(&orders[i])

		stats, ok := groups[label]
		if !ok {
			stats = &contracts.SupplierStats{Label: label}
			groups[label] = stats
		}

		stats.TotalOrders++
		if orders[i].Delivered {
			stats.DeliveredCount++
		}
		if orders[i].State == contracts.StatePendingDelayed {
			stats.DelayedCount++
		}
	}

	result := make([]contracts.SupplierStats, 0, len(groups))
	for _, stats := range groups {
		stats.SuccessRate = successRate(stats.DeliveredCount, stats.DelayedCount, stats.TotalOrders)
		result = append(result, *stats)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SuccessRate != result[j].SuccessRate {
			return result[i].SuccessRate < result[j].SuccessRate
		}
		return result[i].Label < result[j].Label
	})

	return result
}

// successRate computes (delivered − delayed) / total × 100, clamped to
// [0, 100] for display
func successRate(delivered, delayed, total int) float64 {
	if total == 0 {
		return 0
	}

	rate := float64(delivered-delayed) / float64(total) * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// FlagLowPerforming returns the suppliers whose success rate falls below
// the threshold. Groups under the minimum sample size are never flagged,
// whatever their rate: too few orders to mean anything.
func FlagLowPerforming(stats []contracts.SupplierStats, minSample int, maxRate float64) []contracts.SupplierAlert {
	flagged := make([]contracts.SupplierAlert, 0)
	for _, s := range stats {
		if s.TotalOrders < minSample {
			continue
		}
		if s.SuccessRate >= maxRate {
			continue
		}

		flagged = append(flagged, contracts.SupplierAlert{
			Supplier:     s.Label,
			SuccessRate:  s.SuccessRate,
			TotalOrders:  s.TotalOrders,
			DelayedCount: s.DelayedCount,
		})
	}
	return flagged
}
