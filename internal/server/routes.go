package server

import (
	"net/http"
	"time"

	"github.com/tandemledger/tandem/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)

	// Transactions
	mux.HandleFunc("/api/transactions/", s.routeTransactions)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Derived views
	mux.HandleFunc("/api/ledger/summary", s.handleSummary)
	mux.HandleFunc("/api/ledger/trend", s.handleTrend)
	mux.HandleFunc("/api/ledger/trend/chart", s.handleTrendChart)
	mux.HandleFunc("/api/ledger/advice", s.handleAdvice)
	mux.HandleFunc("/api/events", s.handleEvents)

	// Notes
	mux.HandleFunc("/api/notes/", s.routeNotes)
	mux.HandleFunc("/api/notes", s.handleNotes)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"advisor": s.app.GeminiClient != nil,
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
