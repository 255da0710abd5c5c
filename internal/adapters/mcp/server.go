// Package mcp exposes the Advisor to AI agents over the Model Context
// Protocol: tools for driving a conversation and resources for the static
// catalog.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vivekalabs/viveka"
	"github.com/vivekalabs/viveka/internal/catalog"
	"github.com/vivekalabs/viveka/internal/planner"
	"github.com/vivekalabs/viveka/pkg/domain"
)

// SessionResponse is the unified tool output: the session after the
// operation plus a terminal flag so agents know when to stop.
type SessionResponse struct {
	Session  *domain.Session `json:"session" jsonschema_description:"The conversation state after the operation"`
	Terminal bool            `json:"terminal" jsonschema_description:"True when the conversation reached an outcome"`
}

// Server wraps the Advisor and exposes it as an MCP server.
type Server struct {
	advisor   *viveka.Advisor
	catalog   *catalog.Catalog
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server around an Advisor.
func NewServer(advisor *viveka.Advisor, cat *catalog.Catalog) *Server {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Server{
		advisor:   advisor,
		catalog:   cat,
		mcpServer: server.NewMCPServer("viveka-mcp", strings.TrimSpace(viveka.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start (or resume) a loan advisory conversation. Returns the session including the advisor's greeting."),
		mcp.WithString("session_id", mcp.Description("Session ID to resume (optional, a new one is generated when omitted)")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartSession))

	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Send one user message to the advisor and get the updated conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session ID")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The user's message")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(sendTool, mcp.NewStructuredToolHandler(s.handleSendMessage))

	uploadTool := mcp.NewTool("upload_document",
		mcp.WithDescription("Upload a requested document by label. The file is verified and the conversation advances accordingly."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session ID")),
		mcp.WithString("document_label", mcp.Required(), mcp.Description("The outstanding document label, exactly as listed in pending_documents")),
		mcp.WithString("file_name", mcp.Required(), mcp.Description("Uploaded file name (pdf, jpg, jpeg or png)")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(uploadTool, mcp.NewStructuredToolHandler(s.handleUploadDocument))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Inspect a conversation without modifying it."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetSession))

	letterTool := mcp.NewTool("sanction_letter",
		mcp.WithDescription("Generate the sanction letter for an approved conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Target session ID")),
		mcp.WithOutputSchema[domain.Letter](),
	)
	s.mcpServer.AddTool(letterTool, mcp.NewStructuredToolHandler(s.handleSanctionLetter))

	plannerTool := mcp.NewTool("budget_planner",
		mcp.WithDescription("Quick affordability preview: monthly savings, estimated EMI at a flat preview rate, and whether the loan fits the budget."),
		mcp.WithNumber("monthly_income", mcp.Description("Monthly income in rupees")),
		mcp.WithNumber("monthly_expenses", mcp.Description("Monthly expenses in rupees")),
		mcp.WithNumber("loan_amount", mcp.Description("Candidate loan principal in rupees")),
		mcp.WithNumber("tenure_months", mcp.Description("Loan tenure in months (defaults to 12)")),
		mcp.WithOutputSchema[planner.Estimate](),
	)
	s.mcpServer.AddTool(plannerTool, mcp.NewStructuredToolHandler(s.handleBudgetPlanner))
}

func (s *Server) sessionResponse(sess *domain.Session) SessionResponse {
	return SessionResponse{
		Session:  sess,
		Terminal: sess.Stage.Terminal(),
	}
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	id, _ := args["session_id"].(string)

	sess, _, err := s.advisor.StartSession(ctx, id)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("start session failed: %w", err)
	}
	return s.sessionResponse(sess), nil
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	id, _ := args["session_id"].(string)
	text, _ := args["text"].(string)

	sess, err := s.advisor.Send(ctx, id, text)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("send failed: %w", err)
	}
	return s.sessionResponse(sess), nil
}

func (s *Server) handleUploadDocument(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	id, _ := args["session_id"].(string)
	label, _ := args["document_label"].(string)
	fileName, _ := args["file_name"].(string)

	sess, err := s.advisor.Upload(ctx, id, label, fileName)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("upload failed: %w", err)
	}
	return s.sessionResponse(sess), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	id, _ := args["session_id"].(string)

	sess, err := s.advisor.Get(ctx, id)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("get session failed: %w", err)
	}
	return s.sessionResponse(sess), nil
}

func (s *Server) handleSanctionLetter(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Letter, error) {
	id, _ := args["session_id"].(string)

	letter, err := s.advisor.Letter(ctx, id)
	if err != nil {
		return domain.Letter{}, fmt.Errorf("sanction letter failed: %w", err)
	}
	return letter, nil
}

func (s *Server) handleBudgetPlanner(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (planner.Estimate, error) {
	num := func(key string) float64 {
		v, _ := args[key].(float64)
		return v
	}
	return planner.Plan(planner.Input{
		MonthlyIncome:   num("monthly_income"),
		MonthlyExpenses: num("monthly_expenses"),
		LoanAmount:      num("loan_amount"),
		TenureMonths:    int(num("tenure_months")),
	}), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("viveka://catalog", "Site Content Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "viveka://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
