package dialogue

import (
	"math"
	"strconv"

	"github.com/vivekalabs/viveka/pkg/domain"
)

// Advisory interest rates per loan type, percent per annum. These are
// intentionally separate from the budget-planner preview rate; the two
// calculators are not reconciled.
const (
	rateCar       = 11.5
	rateEducation = 11.2
	rateBusiness  = 14
)

// RateFor returns the advisory annual interest rate for a loan type.
func RateFor(t domain.LoanType) float64 {
	switch t {
	case domain.LoanTypeCar:
		return rateCar
	case domain.LoanTypeEducation:
		return rateEducation
	default:
		return rateBusiness
	}
}

// EMI computes the equated monthly installment for principal p (currency
// units), annual rate r (percent) over n months. Degenerate inputs and
// non-finite results collapse to zero instead of propagating an error.
func EMI(p, r float64, n int) float64 {
	if p <= 0 || n <= 0 {
		return 0
	}
	m := r / 12 / 100
	pow := math.Pow(1+m, float64(n))
	emi := p * m * pow / (pow - 1)
	if math.IsNaN(emi) || math.IsInf(emi, 0) {
		return 0
	}
	return emi
}

// formatRupees renders a rounded amount with Indian digit grouping
// (1,23,456): the last three digits group together, then pairs.
func formatRupees(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		out := s[len(s)-3:]
		rest := s[:len(s)-3]
		for len(rest) > 2 {
			out = rest[len(rest)-2:] + "," + out
			rest = rest[:len(rest)-2]
		}
		s = rest + "," + out
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatRate renders an annual rate without trailing zeros (14, 11.5).
func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
