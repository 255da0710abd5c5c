// Package http exposes the Advisor over a REST API with SSE transcript
// streaming, plus the site's content and tool endpoints.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/vivekalabs/viveka"
	"github.com/vivekalabs/viveka/internal/catalog"
	"github.com/vivekalabs/viveka/internal/logging"
	"github.com/vivekalabs/viveka/internal/planner"
	"github.com/vivekalabs/viveka/pkg/domain"
)

// Server hosts the advisory API.
type Server struct {
	advisor *viveka.Advisor
	catalog *catalog.Catalog
	streams *StreamManager
	logger  *slog.Logger

	smsMu     sync.Mutex
	smsOptIns map[string]struct{}
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithCatalog overrides the built-in content catalog.
func WithCatalog(cat *catalog.Catalog) ServerOption {
	return func(s *Server) { s.catalog = cat }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a Server around an Advisor.
func NewServer(advisor *viveka.Advisor, opts ...ServerOption) *Server {
	s := &Server{
		advisor:   advisor,
		catalog:   catalog.Default(),
		logger:    logging.NewNop(),
		smsOptIns: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Handler builds the chi router with CORS enabled.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/messages", s.postMessage)
			r.Post("/documents", s.postDocument)
			r.Get("/letter", s.getLetter)
		})
	})

	r.Get("/events", s.subscribeEvents)

	r.Route("/content", func(r chi.Router) {
		r.Get("/home", s.getContent(func(c *catalog.Catalog) any {
			return map[string]any{"tagline": c.Tagline, "highlights": c.Highlights}
		}))
		r.Get("/faqs", s.getContent(func(c *catalog.Catalog) any { return c.FAQs }))
		r.Get("/branches", s.getBranches)
		r.Get("/topics", s.getContent(func(c *catalog.Catalog) any { return c.Topics }))
		r.Get("/trust", s.getContent(func(c *catalog.Catalog) any { return c.Trust }))
		r.Get("/discussions", s.getContent(func(c *catalog.Catalog) any { return c.Discussions }))
	})

	r.Post("/tools/planner", s.postPlanner)
	r.Post("/sms/optin", s.postSMSOptIn)

	r.Get("/openapi.yaml", s.getOpenAPISpec)
	r.Get("/swagger", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrUnknownDocument),
		errors.Is(err, domain.ErrUnsupportedFile):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotApproved):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "viveka-http",
		"version": strings.TrimSpace(viveka.Version),
	})
}

type createSessionRequest struct {
	ID string `json:"id,omitempty"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	sess, created, err := s.advisor.StartSession(r.Context(), body.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		s.broadcast(domain.Diff(nil, sess))
	}
	s.writeJSON(w, status, sess)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.advisor.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.advisor.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.advisor.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type postMessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var body postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sess, diff, err := s.advisor.SendWithDiff(r.Context(), id, body.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.broadcast(diff)
	s.writeJSON(w, http.StatusOK, sess)
}

type postDocumentRequest struct {
	DocumentLabel string `json:"document_label"`
	FileName      string `json:"file_name"`
}

func (s *Server) postDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var body postDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sess, diff, err := s.advisor.UploadWithDiff(r.Context(), id, body.DocumentLabel, body.FileName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.broadcast(diff)
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) getLetter(w http.ResponseWriter, r *http.Request) {
	letter, err := s.advisor.Letter(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, letter)
}

// broadcast pushes one session delta to SSE subscribers.
func (s *Server) broadcast(diff *domain.SessionDiff) {
	if diff == nil {
		return
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("diff marshal failed", "err", err)
		return
	}
	s.streams.Broadcast(diff.SessionID, string(payload))
}

// subscribeEvents streams session diffs over SSE. The watch query parameter
// narrows delivery to diffs touching the named fields (stage, transcript,
// documents).
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	var sessionID string
	if err := runtime.BindQueryParameter("form", true, true, "session_id", r.URL.Query(), &sessionID); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required"})
		return
	}

	var watch string
	if err := runtime.BindQueryParameter("form", true, false, "watch", r.URL.Query(), &watch); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid watch parameter"})
		return
	}
	var watchList []string
	if watch != "" {
		watchList = strings.Split(watch, ",")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe(sessionID)
	defer cancel()

	s.logger.Info("SSE subscriber connected", "session_id", sessionID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE subscriber disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 && !diffMatchesWatch(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func diffMatchesWatch(msg string, watchList []string) bool {
	var diff domain.SessionDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watchList {
		switch strings.TrimSpace(field) {
		case "stage":
			if diff.Stage != nil {
				return true
			}
		case "transcript":
			if diff.TranscriptDelta != nil {
				return true
			}
		case "documents":
			if diff.PendingDocuments != nil {
				return true
			}
		}
	}
	return false
}

func (s *Server) getContent(pick func(*catalog.Catalog) any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, pick(s.catalog))
	}
}

// getBranches lists branches, optionally narrowed by a city or PIN query.
func (s *Server) getBranches(w http.ResponseWriter, r *http.Request) {
	var query string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &query); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid query parameter"})
		return
	}
	s.writeJSON(w, http.StatusOK, s.catalog.FindBranches(query))
}

func (s *Server) postPlanner(w http.ResponseWriter, r *http.Request) {
	var in planner.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	s.writeJSON(w, http.StatusOK, planner.Plan(in))
}

var phoneRe = regexp.MustCompile(`^(\+91[\s-]?)?[6-9]\d{9}$`)

type smsOptInRequest struct {
	Phone string `json:"phone"`
}

func (s *Server) postSMSOptIn(w http.ResponseWriter, r *http.Request) {
	var body smsOptInRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	phone := strings.TrimSpace(body.Phone)
	if !phoneRe.MatchString(phone) {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid phone number"})
		return
	}

	s.smsMu.Lock()
	s.smsOptIns[phone] = struct{}{}
	s.smsMu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"registered": true,
		"features":   []string{"Payment Reminders", "Application Status", "Quick Support"},
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Viveka API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
