package dialogue

import "github.com/vivekalabs/viveka/pkg/domain"

// The scripted side of the advisor lives here as immutable keyed data.
// Behavior stays in the controller; these tables are only looked up.

// KnowledgeEntry maps a topic keyword to a canned explanatory answer.
// Entries are matched in declaration order, first hit wins.
type KnowledgeEntry struct {
	Keyword string
	Answer  string
}

var knowledgeBase = []KnowledgeEntry{
	{"credit score", "Your credit score (CIBIL score) ranges from 300-900. A score above 750 is considered excellent and helps you get better interest rates. Factors affecting your score include payment history (35%), credit utilization (30%), credit history length (15%), credit mix (10%), and new credit inquiries (10%)."},
	{"emi", "EMI (Equated Monthly Installment) is the fixed payment amount you pay each month towards your loan. It includes both principal and interest. EMI = [P x R x (1+R)^N]/[(1+R)^N-1], where P is principal, R is monthly interest rate, and N is number of months."},
	{"interest rate", "Interest rates vary by loan type. Car loans: 8.5%-15% p.a., Education loans: 9%-14% p.a., Business loans: 11%-18% p.a. Your rate depends on your credit score, income stability, and loan amount."},
	{"prepayment", "You can prepay your loan anytime after 12 months with zero prepayment penalty. This helps you save on interest and close your loan faster. Many customers prepay using annual bonuses."},
	{"cooling off", "You have a 3-day cooling-off period after loan approval where you can cancel the loan with no questions asked and full refund of any processing fees."},
	{"eligibility", "Loan eligibility depends on: age (21-60 years), minimum income (varies by loan type), credit score (650+), employment stability (minimum 1-2 years), and existing EMI obligations."},
	{"documents", "Common documents required: KYC (Aadhaar, PAN), Income proof (salary slips/ITR), Bank statements (6 months), Address proof. Additional documents vary by loan type."},
	{"kfs", "Key Fact Statement (KFS) is a mandatory document that shows all loan terms clearly - interest rate, total cost, charges, your rights, and cancellation policy. We provide this before final approval."},
	// "default" is a matchable keyword like any other: text mentioning
	// loan default gets the generic answer even without a question cue.
	{"default", knowledgeFallback},
}

const knowledgeFallback = "I can help you with information about loans, credit scores, EMI calculations, interest rates, eligibility criteria, and documentation requirements. Please ask a specific question!"

// DocumentChecklist lists required documents per loan type. Only education
// loans carry a co-applicant set.
type DocumentChecklist struct {
	Applicant   []string
	CoApplicant []string
}

var documentRequirements = map[domain.LoanType]DocumentChecklist{
	domain.LoanTypeEducation: {
		Applicant: []string{
			"Passport-size photographs (2)",
			"KYC - Aadhaar Card",
			"KYC - PAN Card",
			"Academic Records (10th, 12th marksheets)",
			"Graduation marksheets (if applicable)",
			"Admission/Offer Letter from university",
			"Fee structure document",
			"Entrance exam scores (GRE/GMAT/IELTS/TOEFL)",
			"Student Visa copy (for abroad studies)",
			"Passport copy",
		},
		CoApplicant: []string{
			"Co-applicant KYC - Aadhaar Card",
			"Co-applicant KYC - PAN Card",
			"Income Proof - Last 3 months salary slips",
			"Income Proof - Form 16 (last 2 years)",
			"Income Proof - ITR (last 2 years)",
			"Bank statements (last 6 months)",
		},
	},
	domain.LoanTypeBusiness: {
		Applicant: []string{
			"KYC - PAN Card",
			"KYC - Aadhaar Card",
			"KYC - Address Proof",
			"Passport-size photographs (2)",
			"Signature proof",
			"GST Registration Certificate",
			"Business bank statements (last 6 months)",
			"ITR (last 2 years)",
			"Audited Balance Sheet",
			"Profit and Loss Statement (last 2 years)",
			"Business license/permits",
		},
	},
	domain.LoanTypeCar: {
		Applicant: []string{
			"KYC - PAN Card",
			"KYC - Aadhaar Card",
			"KYC - Address Proof",
			"Passport-size photographs (2)",
			"Income Proof - Salary slips (last 3 months)",
			"Income Proof - Form 16",
			"Bank statements (last 6 months)",
			"Employment proof/ID card",
		},
	},
}

// RequiredDocuments returns the checklist for a loan type. An unset loan
// type falls back to the car checklist, matching the observed product.
func RequiredDocuments(t domain.LoanType) DocumentChecklist {
	if docs, ok := documentRequirements[t]; ok {
		return docs
	}
	return documentRequirements[domain.LoanTypeCar]
}

var persuasiveResponses = map[domain.LoanType][]string{
	domain.LoanTypeCar: {
		`That's a great question—and the fact you're thinking critically about this says a lot about your financial awareness!

**Here's the reality:**
✔️ According to a 2023 ICICI Bank report, over 60% of car buyers opt for loans to preserve their emergency savings
✔️ 89% said it gave them more financial flexibility rather than depleting their savings

**Think of it this way:** Would you rather pay ₹8 lakhs upfront today and drain your savings, or spread it over 4 years at ₹16,500/month while keeping ₹6 lakhs in your emergency fund?

**Your benefits with our car loan:**
• Interest rates starting at 8.5% p.a.
• Zero prepayment penalty after 12 months
• 3-day cooling-off period
• Quick processing in 48 hours

Would you like me to help you explore the best car loan options for your needs?`,
	},
	domain.LoanTypeEducation: {
		`Congratulations on thinking about your future! 🎓

**Let's reframe this—is this debt, or is this an investment?**

A car depreciates, a vacation is consumed, but education *appreciates* your earning potential for life.

**Per HSBC's Graduate Outcomes Study (2023):**
• 91% of international grads recover their education loan within 3 years
• Average salary jump: 3-5x compared to India-based roles
• 82% reported higher career satisfaction

**Our Education Loan Benefits:**
• Zero EMI during study period (moratorium)
• Tax benefits under Section 80E
• Flexible repayment up to 15 years
• No collateral needed up to ₹7.5 lakhs

Would you like me to help you understand how manageable the repayment would be after graduation?`,
	},
	domain.LoanTypeBusiness: {
		`I really appreciate your entrepreneurial spirit! Let me help you assess this opportunity clearly.

**Per a 2023 Razorpay survey:**
📊 72% of micro businesses who took working capital loans saw 25-50% revenue growth within 6 months
📊 89% said the loan helped them capture seasonal demand they'd have otherwise missed

**Our Business Loan Benefits:**
• Quick disbursal in 3-5 days
• Flexible EMI based on revenue/seasonality
• Zero prepayment penalty
• Collateral-free up to ₹10 lakhs
• GST-compliant transparent processing

**But here's the key:** The loan should match your cash flow pattern, not just your ambition.

Would you like me to help calculate a safe EMI based on your business revenue?`,
	},
}

const greetingScript = `Hello! I'm **Viveka**, your ethical loan advisor 💬 with one of India's most trusted NBFCs with over 2 million satisfied customers.

I'll guide you through loan options that fit your situation—no pressure, no surprises. Everything is secure and consent-driven.

**How can I help you today?**
• Car Loan
• Education Loan
• Business Loan
• General Questions about loans`

const helpScript = `I'd be happy to help you! Please let me know:

• Are you interested in a **Car Loan**, **Education Loan**, or **Business Loan**?
• Or do you have a specific question about loans?`

const consentScriptFormat = `Great! To provide you with the best %s loan options, I'll need a few details.

**Before we proceed, I need your consent:**

Do you agree to share your personal and financial details for loan processing? Your data will be:
✅ Encrypted and secure
✅ Used only for loan assessment
✅ Never shared without your permission
✅ Compliant with RBI guidelines

Please type **"I consent"** or **"Yes, I agree"** to continue.`

const detailsScript = `Thank you for your consent! 🙏

Now, please provide the following details:

**1. Loan Amount Required:** (e.g., ₹5 lakhs, ₹10 lakhs)
**2. Preferred Tenure:** (e.g., 3 years, 5 years)
**3. Your Monthly/Annual Income:** (helps calculate comfortable EMI)
**4. Employment Type:** Salaried or Self-employed?

You can share all details together or one by one.`

const privacyScript = `I understand your concern. Your privacy is important to us.

Would you like me to explain our data protection policies, or would you prefer to ask general questions about loans without sharing personal details?`

const reviewingScript = `Your documents are currently under review. I'll notify you once the verification is complete.

In the meantime, feel free to ask any questions about the loan process!`

const rejectionScriptFormat = `⚠️ **%s** - Document needs attention.

The uploaded document appears to be unclear or may not meet our requirements. This has been **escalated to our loan officer** for manual review.

You will receive a call within 24 hours to resolve this.

Please continue uploading other documents in the meantime.`
