package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/models"
)

// handleSummary handles GET /api/ledger/summary?owner=.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	owner, ok := ownerFilter(w, r, s.app.Config)
	if !ok {
		return
	}

	stats, err := s.app.LedgerService.Summary(r.Context(), owner)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// handleTrend handles GET /api/ledger/trend?owner=.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	owner, ok := ownerFilter(w, r, s.app.Config)
	if !ok {
		return
	}

	series, err := s.app.LedgerService.Trend(r.Context(), owner)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if series == nil {
		series = []models.TrendPoint{}
	}
	WriteJSON(w, http.StatusOK, series)
}

// handleTrendChart handles GET /api/ledger/trend/chart?owner= and returns a
// PNG rendering of the trend series.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	owner, ok := ownerFilter(w, r, s.app.Config)
	if !ok {
		return
	}

	png, err := s.app.LedgerService.TrendChart(r.Context(), owner)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrStoreUnavailable) || errors.Is(err, common.ErrSchemaNotInitialized) {
			s.writeStorageError(w, err)
			return
		}
		// Rendering refuses series too short to chart.
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleAdvice handles GET /api/ledger/advice?owner=. The advisor never
// fails; a degraded backend yields fallback text with a 200.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	owner, ok := ownerFilter(w, r, s.app.Config)
	if !ok {
		return
	}

	advice := s.app.AdvisorService.Advise(r.Context(), owner)
	WriteJSON(w, http.StatusOK, map[string]string{
		"owner":  string(owner),
		"advice": advice,
	})
}

// handleEvents handles GET /api/events, a server-sent event stream that emits
// a "changed" event after every ledger mutation. Clients re-fetch the views
// they care about; the stream itself carries no payload.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	ch, cancel := s.app.LedgerService.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, open := <-ch:
			if !open {
				return
			}
			fmt.Fprint(w, "event: changed\ndata: {}\n\n")
			flusher.Flush()
		}
	}
}
