package domain

// Stage is the discrete position of a conversation in the dialogue flow.
type Stage string

const (
	StageGreeting            Stage = "greeting"
	StageLoanTypeIdentified  Stage = "loan_type_identified"
	StageConsent             Stage = "consent"
	StageCollectingDetails   Stage = "collecting_details"
	StageCollectingDocuments Stage = "collecting_documents"
	StageReviewing           Stage = "reviewing"
	StageApproved            Stage = "approved"
	StageEscalated           Stage = "escalated"
)

// Terminal reports whether the stage represents a conversation outcome.
// Escalated is a soft terminal: the session still accepts document uploads.
func (s Stage) Terminal() bool {
	return s == StageApproved || s == StageEscalated
}

// LoanType is the loan category detected from the user's first intent.
// It is set at most once per session and never changes afterwards.
type LoanType string

const (
	LoanTypeUnset     LoanType = ""
	LoanTypeCar       LoanType = "car"
	LoanTypeEducation LoanType = "education"
	LoanTypeBusiness  LoanType = "business"
)

// Title returns the display form of the loan type, e.g. "Car Loan".
func (t LoanType) Title() string {
	switch t {
	case LoanTypeCar:
		return "Car Loan"
	case LoanTypeEducation:
		return "Education Loan"
	case LoanTypeBusiness:
		return "Business Loan"
	default:
		return "Loan"
	}
}
