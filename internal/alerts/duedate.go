package alerts

import (
	"time"

	"github.com/dportela/procura/backend/internal/contracts"
)

// dueDateSource is one candidate for the authoritative due date.
// The cascade is an ordered list of these; the first defined value wins.
type dueDateSource struct {
	name    string
	resolve func(o *contracts.Order, leadDays int) *time.Time
}

var dueDateCascade = []dueDateSource{
	{
		name: "promised_date",
		resolve: func(o *contracts.Order, _ int) *time.Time {
			return o.PromisedDate
		},
	},
	{
		name: "contractual_deadline",
		resolve: func(o *contracts.Order, _ int) *time.Time {
			return o.ContractualDeadline
		},
	},
	{
		name: "order_date_plus_lead",
		resolve: func(o *contracts.Order, leadDays int) *time.Time {
			if o.OrderDate == nil {
				return nil
			}
			due := o.OrderDate.AddDate(0, 0, leadDays)
			return &due
		},
	},
}

// ResolveDueDate walks the cascade and returns the first defined date:
// explicit delivery forecast, then contractual term, then the order date
// plus the standard lead time. Orders with no date basis at all get nil
// and stay out of delay, upcoming and critical classification.
func ResolveDueDate(o *contracts.Order, fallbackLeadDays int) *time.Time {
	for _, source := range dueDateCascade {
		if due := source.resolve(o, fallbackLeadDays); due != nil {
			return due
		}
	}
	return nil
}
