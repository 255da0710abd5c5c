package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekalabs/viveka"
	httpadapter "github.com/vivekalabs/viveka/internal/adapters/http"
	"github.com/vivekalabs/viveka/internal/dialogue"
	"github.com/vivekalabs/viveka/pkg/domain"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	adv, err := viveka.New(
		viveka.WithVerifier(dialogue.AcceptAll),
		viveka.WithClock(func() time.Time {
			return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
		}),
	)
	require.NoError(t, err)
	return httpadapter.NewServer(adv).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) domain.Session {
	t.Helper()
	var sess domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	return sess
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/info", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "viveka-http")
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decodeSession(t, rec)
	assert.NotEmpty(t, sess.ID)
	require.Len(t, sess.Transcript, 1)
	assert.Contains(t, sess.Transcript[0].Text, "Viveka")

	// Creating with the same ID resumes instead of reseeding.
	rec = doJSON(t, h, http.MethodPost, "/sessions", map[string]string{"id": sess.ID})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/sessions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), sess.ID)

	rec = doJSON(t, h, http.MethodGet, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConversationOverHTTP(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeSession(t, rec).ID

	// A letter before approval is a conflict.
	rec = doJSON(t, h, http.MethodGet, "/sessions/"+id+"/letter", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	send := func(text string) domain.Session {
		rec := doJSON(t, h, http.MethodPost, "/sessions/"+id+"/messages", map[string]string{"text": text})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decodeSession(t, rec)
	}

	sess := send("I want a car loan")
	assert.Equal(t, domain.StageConsent, sess.Stage)

	send("Yes, I agree")
	send("5 lakhs for 3 years, salaried")
	sess = send("Yes, proceed")
	require.NotEmpty(t, sess.PendingDocuments)

	for i, label := range sess.PendingDocuments {
		rec := doJSON(t, h, http.MethodPost, "/sessions/"+id+"/documents", map[string]string{
			"document_label": label,
			"file_name":      fmt.Sprintf("doc%d.pdf", i),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		sess = decodeSession(t, rec)
	}
	assert.Equal(t, domain.StageApproved, sess.Stage)

	rec = doJSON(t, h, http.MethodGet, "/sessions/"+id+"/letter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var letter domain.Letter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &letter))
	assert.Contains(t, letter.Content, "LOAN SANCTION LETTER")
	assert.Contains(t, letter.FileName, "Viveka_Sanction_Letter_")
}

func TestErrorMapping(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeSession(t, rec).ID

	t.Run("empty message", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/sessions/"+id+"/messages", map[string]string{"text": "  "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload against unknown label", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/sessions/"+id+"/documents", map[string]string{
			"document_label": "Horoscope",
			"file_name":      "stars.pdf",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/sessions/nope/messages", map[string]string{"text": "hello"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/messages", bytes.NewBufferString("{nope"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestContentEndpoints(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		path string
		want string
	}{
		{"/content/home", "AI-Powered Financial Guide"},
		{"/content/faqs", "What is VIVEKA?"},
		{"/content/branches", "Mumbai Central"},
		{"/content/topics", "Understanding Credit Scores"},
		{"/content/trust", "Data Encryption"},
		{"/content/discussions", "FinanceGuru"},
	}
	for _, tt := range tests {
		rec := doJSON(t, h, http.MethodGet, tt.path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, tt.path)
		assert.Contains(t, rec.Body.String(), tt.want, tt.path)
	}

	t.Run("branch search", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/content/branches?q=mumbai", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Mumbai Central")
		assert.NotContains(t, rec.Body.String(), "Delhi NCR")

		rec = doJSON(t, h, http.MethodGet, "/content/branches?q=110001", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Delhi NCR")

		rec = doJSON(t, h, http.MethodGet, "/content/branches?q=nowhere", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null\n", rec.Body.String())
	})
}

func TestPlannerEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/tools/planner", map[string]any{
		"monthly_income":   50000,
		"monthly_expenses": 30000,
		"loan_amount":      100000,
		"tenure_months":    12,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var est struct {
		MonthlySavings float64 `json:"monthly_savings"`
		EMI            float64 `json:"emi"`
		Affordable     bool    `json:"affordable"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.Equal(t, 20000.0, est.MonthlySavings)
	assert.InDelta(t, 8791.59, est.EMI, 1)
	assert.True(t, est.Affordable)
}

func TestSMSOptIn(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/sms/optin", map[string]string{"phone": "+91 9876543210"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment Reminders")

	rec = doJSON(t, h, http.MethodPost, "/sms/optin", map[string]string{"phone": "12345"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsRequiresSessionID(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/events", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenAPIEndpoints(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Viveka Loan Advisory API")

	rec = doJSON(t, h, http.MethodGet, "/swagger", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
