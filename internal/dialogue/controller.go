package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/vivekalabs/viveka/internal/logging"
	"github.com/vivekalabs/viveka/pkg/domain"
)

// Controller is the dialogue state machine. It owns all session mutation:
// hosts feed it user turns and upload events, it appends transcript messages
// and advances the stage. One session has exactly one writer, so the
// controller itself holds no per-session state and is safe to share.
type Controller struct {
	verifier Verifier
	clock    func() time.Time
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures the Controller.
type Option func(*Controller)

// WithVerifier replaces the document verification policy.
func WithVerifier(v Verifier) Option {
	return func(c *Controller) { c.verifier = v }
}

// WithClock replaces the time source, used for message timestamps and
// sanction-letter references.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets a structured logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) { c.hooks = hooks }
}

// NewController creates a dialogue controller with the default randomized
// verifier and wall clock.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		verifier: RandomVerifier(rand.New(rand.NewSource(time.Now().UnixNano()))),
		clock:    time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartSession creates a session seeded with the advisor greeting.
func (c *Controller) StartSession(ctx context.Context, id string) *domain.Session {
	s := domain.NewSession(id, c.clock())
	c.say(ctx, s, greetingScript)
	return s
}

// HandleText processes one user turn. Blank input is rejected with
// domain.ErrEmptyInput and produces no turn at all. The bot's responses are
// appended strictly after the triggering input.
func (c *Controller) HandleText(ctx context.Context, s *domain.Session, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.ErrEmptyInput
	}

	c.record(ctx, s, input)
	lower := strings.ToLower(input)

	switch s.Stage {
	case domain.StageGreeting:
		c.handleGreeting(ctx, s, input)

	case domain.StageConsent:
		if containsAny(lower, "consent", "agree", "yes", "ok") {
			s.ConsentGiven = true
			c.setStage(ctx, s, domain.StageCollectingDetails)
			c.say(ctx, s, detailsScript)
		} else {
			c.say(ctx, s, privacyScript)
		}

	case domain.StageCollectingDetails:
		c.handleDetails(ctx, s, input)

	case domain.StageCollectingDocuments:
		if containsAny(lower, "yes", "proceed", "ok") {
			c.issueChecklist(ctx, s)
		} else if answer := LookupKnowledge(input); answer != "" {
			c.say(ctx, s, answer)
		}
		// Anything else at this stage is deliberately left unanswered.

	case domain.StageReviewing:
		c.say(ctx, s, reviewingScript)

	case domain.StageApproved, domain.StageEscalated:
		if answer := LookupKnowledge(input); answer != "" {
			c.say(ctx, s, answer)
		} else {
			status := "approved"
			if s.Stage == domain.StageEscalated {
				status = "escalated to our officer"
			}
			c.say(ctx, s, fmt.Sprintf("Your loan application has been %s. Is there anything else I can help you with?", status))
		}
	}

	return nil
}

func (c *Controller) handleGreeting(ctx context.Context, s *domain.Session, input string) {
	if lt := DetectLoanType(input); lt != domain.LoanTypeUnset {
		// Loan type is fixed on first detection and never changes.
		s.LoanType = lt
		c.setStage(ctx, s, domain.StageLoanTypeIdentified)
		c.say(ctx, s, persuasiveResponses[lt][0])
		c.say(ctx, s, fmt.Sprintf(consentScriptFormat, lt))
		c.setStage(ctx, s, domain.StageConsent)
		return
	}
	if answer := LookupKnowledge(input); answer != "" {
		c.say(ctx, s, answer)
		return
	}
	c.say(ctx, s, helpScript)
}

func (c *Controller) handleDetails(ctx context.Context, s *domain.Session, input string) {
	ExtractDetails(input, &s.Details)

	if s.Details.Amount == "" || s.Details.Tenure == "" {
		var missing []string
		if s.Details.Amount == "" {
			missing = append(missing, "loan amount")
		}
		if s.Details.Tenure == "" {
			missing = append(missing, "preferred tenure")
		}
		c.say(ctx, s, fmt.Sprintf("Thanks! I still need your **%s** to calculate the EMI. Please provide these details.", strings.Join(missing, " and ")))
		return
	}

	c.say(ctx, s, c.loanSummary(s))
	c.setStage(ctx, s, domain.StageCollectingDocuments)
}

func (c *Controller) loanSummary(s *domain.Session) string {
	principal := amountLakhs(s.Details.Amount) * 100000
	months := tenureMonths(s.Details.Tenure)
	rate := RateFor(s.LoanType)
	emi := EMI(principal, rate, months)
	total := emi * float64(months)

	return fmt.Sprintf(`Excellent! Based on your details, here's your loan summary:

**Loan Type:** %s
**Amount:** %s
**Tenure:** %s
**Interest Rate:** %s%% p.a.
**Estimated EMI:** ₹%s/month

**Total Payable:** ₹%s
**Total Interest:** ₹%s

**Your Rights:**
✅ 3-day cooling-off period (full refund)
✅ Zero prepayment penalty after 12 months
✅ No hidden charges

Would you like to proceed with the documentation? Type **"Yes, proceed"** to continue.`,
		s.LoanType.Title(),
		s.Details.Amount,
		s.Details.Tenure,
		formatRate(rate),
		formatRupees(emi),
		formatRupees(total),
		formatRupees(total-principal),
	)
}

// issueChecklist populates the outstanding document set and emits the
// required-document checklist with upload affordances.
func (c *Controller) issueChecklist(ctx context.Context, s *domain.Session) {
	docs := RequiredDocuments(s.LoanType)

	pending := make([]string, 0, len(docs.Applicant)+len(docs.CoApplicant))
	pending = append(pending, docs.Applicant...)
	pending = append(pending, docs.CoApplicant...)
	s.PendingDocuments = pending

	var list strings.Builder
	for i, d := range docs.Applicant {
		fmt.Fprintf(&list, "%d. %s\n", i+1, d)
	}
	text := fmt.Sprintf(`Great! For your %s loan, please upload the following documents:

**Applicant Documents:**
%s`, s.LoanType, strings.TrimRight(list.String(), "\n"))

	if len(docs.CoApplicant) > 0 {
		var coList strings.Builder
		for i, d := range docs.CoApplicant {
			fmt.Fprintf(&coList, "%d. %s\n", i+1, d)
		}
		text += fmt.Sprintf("\n\n**Co-applicant Documents:**\n%s", strings.TrimRight(coList.String(), "\n"))
	}

	text += "\n\nClick on each document type below to upload. All documents should be clear, readable PDFs or images."

	actions := make([]domain.Action, 0, len(docs.Applicant))
	for _, d := range docs.Applicant {
		actions = append(actions, domain.Action{
			Type:          domain.ActionUpload,
			Label:         d,
			DocumentLabel: d,
		})
	}

	c.say(ctx, s, text, actions...)
}

// HandleUpload resolves one document upload event. The document must still
// be outstanding and the file must pass the extension filter. An accepted
// upload shrinks the pending set; a rejected one escalates the session but
// leaves it open for further uploads. When the pending set empties and no
// rejected document is on record, the session is approved.
func (c *Controller) HandleUpload(ctx context.Context, s *domain.Session, label, fileName string) error {
	if !s.IsPending(label) {
		return domain.ErrUnknownDocument
	}
	if !AcceptedFile(fileName) {
		return domain.ErrUnsupportedFile
	}

	c.record(ctx, s, fmt.Sprintf("📎 Uploaded: %s for %s", fileName, label))

	valid := c.verifier(label, fileName)
	s.UploadedDocuments = append(s.UploadedDocuments, domain.UploadedDocument{
		FileName:      fileName,
		DocumentLabel: label,
		Valid:         valid,
	})
	c.emitUpload(ctx, s, label, fileName, valid)

	if valid {
		s.ResolvePending(label)
		note := "🎉 This is the last document!"
		if remaining := len(s.PendingDocuments); remaining > 0 {
			note = fmt.Sprintf("📋 %d more documents remaining.", remaining)
		}
		c.say(ctx, s, fmt.Sprintf("✅ **%s** uploaded successfully and verified!\n\n%s", label, note))
	} else {
		c.say(ctx, s, fmt.Sprintf(rejectionScriptFormat, label))
		c.setStage(ctx, s, domain.StageEscalated)
	}

	// Approval requires an empty pending set AND a spotless upload record.
	// A rejected document is never resolved, so escalation is sticky with
	// respect to auto-approval.
	if len(s.PendingDocuments) == 0 && !s.HasInvalidUpload() {
		c.setStage(ctx, s, domain.StageApproved)
		c.say(ctx, s, c.approvalSummary(s), domain.Action{
			Type:  domain.ActionDownload,
			Label: "Download Sanction Letter (PDF)",
		})
	}

	return nil
}

func (c *Controller) approvalSummary(s *domain.Session) string {
	return fmt.Sprintf(`🎉 **Congratulations! Your loan has been approved!**

**Loan Details:**
• Type: %s
• Amount: %s
• Tenure: %s
• Status: ✅ APPROVED

Your sanction letter is ready for download. Please save it for your records.

**Next Steps:**
1. Download and review your sanction letter
2. Sign and return within 7 days
3. Funds will be disbursed within 48 hours of signing

Thank you for choosing Viveka! 🙏`,
		s.LoanType.Title(),
		s.Details.Amount,
		s.Details.Tenure,
	)
}

func (c *Controller) say(ctx context.Context, s *domain.Session, text string, actions ...domain.Action) {
	msg := domain.Message{
		ID:        s.NextMessageID(),
		Text:      text,
		Sender:    domain.SenderBot,
		Timestamp: c.clock(),
		Actions:   actions,
	}
	s.Append(msg)
	c.emitMessage(ctx, s, msg)
}

func (c *Controller) record(ctx context.Context, s *domain.Session, text string) {
	msg := domain.Message{
		ID:        s.NextMessageID(),
		Text:      text,
		Sender:    domain.SenderUser,
		Timestamp: c.clock(),
	}
	s.Append(msg)
	c.emitMessage(ctx, s, msg)
}

func (c *Controller) setStage(ctx context.Context, s *domain.Session, to domain.Stage) {
	if s.Stage == to {
		return
	}
	from := s.Stage
	s.Stage = to
	c.logger.Debug("stage transition", "session_id", s.ID, "from", from, "to", to)
	if c.hooks.OnStageChange != nil {
		c.hooks.OnStageChange(ctx, &domain.StageEvent{
			EventBase: domain.EventBase{Timestamp: c.clock(), SessionID: s.ID},
			From:      from,
			To:        to,
		})
	}
}

func (c *Controller) emitMessage(ctx context.Context, s *domain.Session, msg domain.Message) {
	if c.hooks.OnMessage != nil {
		c.hooks.OnMessage(ctx, &domain.MessageEvent{
			EventBase: domain.EventBase{Timestamp: msg.Timestamp, SessionID: s.ID},
			Message:   msg,
		})
	}
}

func (c *Controller) emitUpload(ctx context.Context, s *domain.Session, label, fileName string, valid bool) {
	if c.hooks.OnUpload != nil {
		c.hooks.OnUpload(ctx, &domain.UploadEvent{
			EventBase:     domain.EventBase{Timestamp: c.clock(), SessionID: s.ID},
			DocumentLabel: label,
			FileName:      fileName,
			Valid:         valid,
		})
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
