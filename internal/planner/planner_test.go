package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan(t *testing.T) {
	t.Run("affordable loan", func(t *testing.T) {
		est := Plan(Input{
			MonthlyIncome:   50000,
			MonthlyExpenses: 30000,
			LoanAmount:      100000,
			TenureMonths:    12,
		})
		assert.Equal(t, 20000.0, est.MonthlySavings)
		assert.InDelta(t, 8791.59, est.EMI, 1)
		assert.True(t, est.Affordable)
	})

	t.Run("emi exceeding savings", func(t *testing.T) {
		est := Plan(Input{
			MonthlyIncome:   40000,
			MonthlyExpenses: 35000,
			LoanAmount:      1000000,
			TenureMonths:    24,
		})
		assert.False(t, est.Affordable)
	})

	t.Run("zero principal yields zero emi", func(t *testing.T) {
		est := Plan(Input{MonthlyIncome: 10000, MonthlyExpenses: 4000})
		assert.Zero(t, est.EMI)
		assert.True(t, est.Affordable, "positive savings against a zero EMI")
	})

	t.Run("missing tenure defaults to a year", func(t *testing.T) {
		a := Plan(Input{LoanAmount: 120000})
		b := Plan(Input{LoanAmount: 120000, TenureMonths: 12})
		assert.Equal(t, b.EMI, a.EMI)
	})

	t.Run("negative savings", func(t *testing.T) {
		est := Plan(Input{MonthlyIncome: 1000, MonthlyExpenses: 5000})
		assert.Equal(t, -4000.0, est.MonthlySavings)
		assert.False(t, est.Affordable)
	})
}
