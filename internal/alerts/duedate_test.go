package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dportela/procura/backend/internal/contracts"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestResolveDueDate(t *testing.T) {
	tests := []struct {
		name  string
		order contracts.Order
		want  *time.Time
	}{
		{
			name: "promised date wins over everything",
			order: contracts.Order{
				PromisedDate:        datePtr(2024, 1, 10),
				ContractualDeadline: datePtr(2024, 1, 20),
				OrderDate:           datePtr(2023, 12, 1),
			},
			want: datePtr(2024, 1, 10),
		},
		{
			name: "contractual deadline when no promise",
			order: contracts.Order{
				ContractualDeadline: datePtr(2024, 1, 20),
				OrderDate:           datePtr(2023, 12, 1),
			},
			want: datePtr(2024, 1, 20),
		},
		{
			name: "order date plus lead as last resort",
			order: contracts.Order{
				OrderDate: datePtr(2024, 1, 1),
			},
			want: datePtr(2024, 1, 31),
		},
		{
			name:  "no basis at all",
			order: contracts.Order{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDueDate(&tt.order, 30)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestResolveDueDateCustomLead(t *testing.T) {
	order := contracts.Order{OrderDate: datePtr(2024, 3, 1)}

	got := ResolveDueDate(&order, 15)

	require.NotNil(t, got)
	assert.True(t, got.Equal(date(2024, 3, 16)))
}

func TestDueDateCascadeOrder(t *testing.T) {
	// The cascade itself is data; its priority order is part of the
	// contract with the procurement team.
	require.Len(t, dueDateCascade, 3)
	assert.Equal(t, "promised_date", dueDateCascade[0].name)
	assert.Equal(t, "contractual_deadline", dueDateCascade[1].name)
	assert.Equal(t, "order_date_plus_lead", dueDateCascade[2].name)
}
