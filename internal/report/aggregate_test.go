package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_TotalsAndPendingSubset(t *testing.T) {
	entries := []Entry{
		{OccupantName: "settled", ActualAmount: 5000, AmountPaid: 5000, Pending: 0},
		{OccupantName: "small debt", ActualAmount: 3000, AmountPaid: 2500, Pending: 500},
		{OccupantName: "big debt", ActualAmount: 8000, AmountPaid: 1000, Pending: 7000},
		{OccupantName: "tie low paid", ActualAmount: 2000, AmountPaid: 500, Pending: 1500},
		{OccupantName: "tie high paid", ActualAmount: 4000, AmountPaid: 2500, Pending: 1500},
	}

	pending, totals := Aggregate(entries)

	assert.Equal(t, float64(22000), totals.Expected)
	assert.Equal(t, float64(11500), totals.Received)
	assert.Equal(t, float64(10500), totals.Pending)
	assert.Equal(t, 5, totals.CountAll)
	assert.Equal(t, 4, totals.CountPending)

	// Pending list is exactly the pending>0 subset, sorted by descending
	// pending, ties by descending amountPaid.
	require.Len(t, pending, 4)
	assert.Equal(t, "big debt", pending[0].OccupantName)
	assert.Equal(t, "tie high paid", pending[1].OccupantName)
	assert.Equal(t, "tie low paid", pending[2].OccupantName)
	assert.Equal(t, "small debt", pending[3].OccupantName)
}

func TestAggregate_Empty(t *testing.T) {
	pending, totals := Aggregate(nil)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
	assert.Equal(t, Totals{}, totals)
}
