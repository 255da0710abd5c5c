package dialogue

import (
	"strings"

	"github.com/vivekalabs/viveka/pkg/domain"
)

// intentKeywords is ordered: the first category with a matching keyword wins.
var intentKeywords = []struct {
	loanType domain.LoanType
	keywords []string
}{
	{domain.LoanTypeCar, []string{"car", "vehicle", "auto"}},
	{domain.LoanTypeEducation, []string{"education", "study", "university", "college", "student"}},
	{domain.LoanTypeBusiness, []string{"business", "msme", "startup", "shop", "company"}},
}

// DetectLoanType classifies free text into a loan category by
// case-insensitive substring match. Returns LoanTypeUnset when nothing hits.
func DetectLoanType(text string) domain.LoanType {
	lower := strings.ToLower(text)
	for _, cat := range intentKeywords {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.loanType
			}
		}
	}
	return domain.LoanTypeUnset
}
