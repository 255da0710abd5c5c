package dialogue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vivekalabs/viveka/pkg/domain"
)

var (
	amountRe = regexp.MustCompile(`(?i)(\d+)\s*(lakh|lac|l|crore|cr)?`)
	tenureRe = regexp.MustCompile(`(?i)(\d+)\s*(year|yr|month|mo)`)
	incomeRe = regexp.MustCompile(`(?i)income.*?(\d+)|(\d+).*?(salary|income|earning)`)
)

// ExtractDetails pattern-matches loan fields out of a free-text turn and
// merges them into the given details. Only newly found fields overwrite;
// everything previously captured survives an omission.
func ExtractDetails(input string, details *domain.LoanDetails) {
	lower := strings.ToLower(input)

	if m := amountRe.FindStringSubmatch(input); m != nil && m[1] != "" {
		amount, _ := strconv.Atoi(m[1])
		// Amounts normalize to lakhs; crore converts, lakh/lac/l pass through.
		if strings.Contains(strings.ToLower(m[2]), "cr") {
			amount *= 100
		}
		details.Amount = fmt.Sprintf("₹%d Lakhs", amount)
	}

	if m := tenureRe.FindStringSubmatch(input); m != nil {
		details.Tenure = fmt.Sprintf("%s %ss", m[1], strings.ToLower(m[2]))
	}

	if m := incomeRe.FindStringSubmatch(input); m != nil {
		val := m[1]
		if val == "" {
			val = m[2]
		}
		if val != "" {
			details.Income = "₹" + val
		}
	}

	if strings.Contains(lower, "salaried") {
		details.EmploymentType = "Salaried"
	} else if strings.Contains(lower, "self") || strings.Contains(lower, "business") {
		details.EmploymentType = "Self-employed"
	}
}

// amountLakhs parses the numeric part of a captured amount ("₹5 Lakhs" -> 5).
func amountLakhs(amount string) float64 {
	var digits strings.Builder
	for _, r := range amount {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}
	v, _ := strconv.ParseFloat(digits.String(), 64)
	return v
}

// tenureMonths converts a captured tenure ("3 years", "18 months") to months.
func tenureMonths(tenure string) int {
	m := tenureRe.FindStringSubmatch(tenure)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	if strings.Contains(strings.ToLower(tenure), "year") {
		return n * 12
	}
	return n
}
