// Package planner implements the standalone budget-planner tool. It is a
// quick affordability preview and is deliberately not reconciled with the
// advisory rates used inside the loan conversation.
package planner

import "math"

// Flat preview rate, 10% per annum regardless of loan type.
const previewAnnualRate = 0.10

// Input is one budget-planner request. All amounts are monthly rupees
// except LoanAmount, which is the full principal.
type Input struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	LoanAmount      float64 `json:"loan_amount"`
	TenureMonths    int     `json:"tenure_months"`
}

// Estimate is the planner's verdict for one input.
type Estimate struct {
	MonthlySavings float64 `json:"monthly_savings"`
	EMI            float64 `json:"emi"`
	Affordable     bool    `json:"affordable"`
}

// Plan computes monthly savings, the preview EMI and whether the loan fits
// the budget. A missing tenure defaults to 12 months; a non-positive
// principal yields a zero EMI. Affordability is a strict comparison:
// savings must exceed the EMI, not merely match it.
func Plan(in Input) Estimate {
	months := in.TenureMonths
	if months <= 0 {
		months = 12
	}

	savings := in.MonthlyIncome - in.MonthlyExpenses

	emi := 0.0
	if in.LoanAmount > 0 {
		rate := previewAnnualRate / 12
		pow := math.Pow(1+rate, float64(months))
		emi = in.LoanAmount * rate * pow / (pow - 1)
		if math.IsNaN(emi) {
			emi = 0
		}
		// Match display rounding to the paisa.
		emi = math.Round(emi*100) / 100
	}

	return Estimate{
		MonthlySavings: savings,
		EMI:            emi,
		Affordable:     savings > emi,
	}
}
