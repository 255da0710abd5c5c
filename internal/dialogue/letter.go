package dialogue

import (
	"fmt"
	"strings"

	"github.com/vivekalabs/viveka/pkg/domain"
)

const letterFormat = `LOAN SANCTION LETTER
====================

Date: %s
Reference No: %s

Dear Applicant,

We are pleased to inform you that your %s LOAN application has been approved.

LOAN DETAILS:
-------------
Loan Type: %s
Sanctioned Amount: %s
Tenure: %s
Interest Rate: %s%% per annum
EMI: As discussed

TERMS & CONDITIONS:
-------------------
1. This sanction is valid for 30 days from the date of issue.
2. Zero prepayment penalty after 12 months.
3. 3-day cooling-off period applicable.
4. All terms are as per RBI guidelines.

For any queries, contact our customer support.

Warm Regards,
Team Viveka
India's Trusted NBFC
`

// SanctionLetter renders the plain-text sanction letter for an approved
// session. The reference number and file name are both derived from the
// clock, so a fixed clock yields a fully deterministic letter.
func (c *Controller) SanctionLetter(s *domain.Session) (domain.Letter, error) {
	if s.Stage != domain.StageApproved {
		return domain.Letter{}, domain.ErrNotApproved
	}

	now := c.clock()
	ref := fmt.Sprintf("VIV/%d", now.UnixMilli())
	content := fmt.Sprintf(letterFormat,
		now.Format("02/01/2006"),
		ref,
		strings.ToUpper(string(s.LoanType)),
		s.LoanType.Title(),
		s.Details.Amount,
		s.Details.Tenure,
		formatRate(RateFor(s.LoanType)),
	)

	return domain.Letter{
		FileName:    fmt.Sprintf("Viveka_Sanction_Letter_%d.txt", now.UnixMilli()),
		Reference:   ref,
		Content:     content,
		GeneratedAt: now,
	}, nil
}
