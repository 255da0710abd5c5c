package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vivekalabs/viveka/pkg/domain"
)

// TestExtractDetails verifies field capture from free-text turns.
func TestExtractDetails(t *testing.T) {
	t.Run("amount in lakhs", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("I need 5 lakh rupees", &d)
		assert.Equal(t, "₹5 Lakhs", d.Amount)
	})

	t.Run("crore converts to lakhs", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("around 2 crore", &d)
		assert.Equal(t, "₹200 Lakhs", d.Amount)
	})

	t.Run("bare number still counts as an amount", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("10 should do", &d)
		assert.Equal(t, "₹10 Lakhs", d.Amount)
	})

	t.Run("tenure in years and months", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("over 3 years please", &d)
		assert.Equal(t, "3 years", d.Tenure)

		d = domain.LoanDetails{}
		ExtractDetails("say 18 months", &d)
		assert.Equal(t, "18 months", d.Tenure)
	})

	t.Run("income behind the income keyword", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("my income is 80000 per month", &d)
		assert.Equal(t, "₹80000", d.Income)
	})

	t.Run("employment type", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("I am salaried", &d)
		assert.Equal(t, "Salaried", d.EmploymentType)

		d = domain.LoanDetails{}
		ExtractDetails("self employed for 10 years", &d)
		assert.Equal(t, "Self-employed", d.EmploymentType)
	})

	t.Run("later turns merge instead of clearing", func(t *testing.T) {
		var d domain.LoanDetails
		ExtractDetails("7 lakhs for 5 years", &d)
		ExtractDetails("I am salaried", &d)

		assert.Equal(t, "₹7 Lakhs", d.Amount)
		assert.Equal(t, "5 years", d.Tenure)
		assert.Equal(t, "Salaried", d.EmploymentType)
	})
}

func TestAmountLakhs(t *testing.T) {
	assert.Equal(t, 5.0, amountLakhs("₹5 Lakhs"))
	assert.Equal(t, 200.0, amountLakhs("₹200 Lakhs"))
	assert.Equal(t, 0.0, amountLakhs(""))
}

func TestTenureMonths(t *testing.T) {
	assert.Equal(t, 36, tenureMonths("3 years"))
	assert.Equal(t, 18, tenureMonths("18 months"))
	assert.Equal(t, 12, tenureMonths("1 year"))
	assert.Equal(t, 0, tenureMonths("soon"))
}
