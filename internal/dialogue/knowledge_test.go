package dialogue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLookupKnowledge covers topic matching, the question-cue fallback, and
// the explicit no-answer case.
func TestLookupKnowledge(t *testing.T) {
	t.Run("topic keyword returns the canned answer", func(t *testing.T) {
		answer := LookupKnowledge("What is a credit score?")
		assert.Contains(t, answer, "CIBIL")

		answer = LookupKnowledge("can I do PREPAYMENT early")
		assert.Contains(t, answer, "zero prepayment penalty")
	})

	t.Run("first matching topic wins", func(t *testing.T) {
		// "emi" appears before "interest rate" in the table.
		answer := LookupKnowledge("how does emi relate to the interest rate")
		assert.Contains(t, answer, "Equated Monthly Installment")
	})

	t.Run("the word default matches like any topic", func(t *testing.T) {
		// No question cue needed; "default" is itself a table keyword.
		answer := LookupKnowledge("loan default penalty")
		assert.Contains(t, answer, "Please ask a specific question")
	})

	t.Run("question cue without a topic returns the fallback", func(t *testing.T) {
		answer := LookupKnowledge("tell me something useful")
		assert.Contains(t, answer, "Please ask a specific question")
	})

	t.Run("no topic and no cue returns empty", func(t *testing.T) {
		assert.Empty(t, LookupKnowledge("asdf qwerty"))
	})

	t.Run("every table answer is non-empty", func(t *testing.T) {
		for _, entry := range knowledgeBase {
			assert.NotEmpty(t, strings.TrimSpace(entry.Answer), "keyword %q", entry.Keyword)
		}
	})
}
