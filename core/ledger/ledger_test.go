package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRowsAreInactive(t *testing.T) {
	l := New()
	l.Seed("1", "2025-01")
	l.Seed("1", "2025-02")

	assert.Len(t, l.Rows(), 2)
	assert.Empty(t, l.Active())
	assert.Len(t, l.Pending(), 2)
	assert.Empty(t, l.CoveredPeriods("1"))
	assert.True(t, l.WithheldTaxTotal("1").IsZero())
}

func TestResolveActivatesPendingRow(t *testing.T) {
	l := New()
	l.Seed("1", "2025-01")
	l.Resolve("1", "2025-01", "05/02/2025", decimal.RequireFromString("120.00"))

	require.Len(t, l.Rows(), 1)
	assert.Len(t, l.Active(), 1)
	assert.Empty(t, l.Pending())
	assert.True(t, l.CoveredPeriods("1")["2025-01"])
	assert.True(t, l.WithheldTaxTotal("1").Equal(decimal.RequireFromString("120.00")))
}

func TestMultipleCorrectionsSum(t *testing.T) {
	l := New()
	l.Seed("1", "2025-01")
	l.Resolve("1", "2025-01", "05/02/2025", decimal.RequireFromString("120.00"))
	// a second correction for the same pair appends and sums
	l.Resolve("1", "2025-01", "20/02/2025", decimal.RequireFromString("30.50"))

	assert.Len(t, l.Rows(), 2)
	assert.True(t, l.WithheldTaxTotal("1").Equal(decimal.RequireFromString("150.50")))
}

func TestResolveUnseededPairAppends(t *testing.T) {
	l := New()
	l.Resolve("2", "2025", "10/12/2025", decimal.Zero)

	assert.Len(t, l.Active(), 1)
	assert.True(t, l.CoveredPeriods("2")["2025"])
}

func TestTotalsArePerPerson(t *testing.T) {
	l := New()
	l.Resolve("1", "2025-01", "x", decimal.RequireFromString("10"))
	l.Resolve("2", "2025-01", "x", decimal.RequireFromString("99"))

	assert.True(t, l.WithheldTaxTotal("1").Equal(decimal.RequireFromString("10")))
	assert.Empty(t, l.CoveredPeriods("3"))
}
