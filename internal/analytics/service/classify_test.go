package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sales-analytics/internal/analytics/model"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, model.Cancelled, Classify("cancelled by customer"))
	assert.Equal(t, model.Cancelled, Classify("CANCELED"))
	assert.Equal(t, model.Cancelled, Classify("Return-Cancel"))
	assert.Equal(t, model.Completed, Classify("Shipped"))
	assert.Equal(t, model.Completed, Classify(""))
	assert.Equal(t, model.Completed, Classify("CANCL"))
}

func TestPartitionExhaustiveAndDisjoint(t *testing.T) {
	statuses := []string{"Shipped", "cancelled", "", "DELIVERED", "Cancel requested", "RTO", "canc"}
	rows := make([]model.CanonicalRow, 0, len(statuses))
	for i, s := range statuses {
		rows = append(rows, model.CanonicalRow{OrderID: string(rune('a' + i)), Status: NormalizeStatus(s), Outcome: Classify(s)})
	}

	completed, cancelled := Partition(rows)
	assert.Equal(t, len(rows), len(completed)+len(cancelled))

	seen := map[string]bool{}
	for _, r := range completed {
		assert.Equal(t, model.Completed, r.Outcome)
		seen[r.OrderID] = true
	}
	for _, r := range cancelled {
		assert.Equal(t, model.Cancelled, r.Outcome)
		assert.False(t, seen[r.OrderID], "row in both partitions")
	}
	assert.Len(t, cancelled, 2)
}
