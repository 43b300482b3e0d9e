package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/tandemledger/tandem/internal/models"
)

// handleNotes handles /api/notes (list and create).
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleNoteList(w, r)
	case http.MethodPost:
		s.handleNoteCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeNotes dispatches /api/notes/{id} and /api/notes/{id}/complete.
func (s *Server) routeNotes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/complete") {
		s.handleNoteComplete(w, r)
		return
	}

	id := PathParam(r, "/api/notes/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleNoteUpdate(w, r, id)
	case http.MethodDelete:
		s.handleNoteDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleNoteList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFilter(w, r, s.app.Config)
	if !ok {
		return
	}

	var (
		notes []models.Note
		err   error
	)
	if r.URL.Query().Get("overdue") == "true" {
		notes, err = s.app.NoteService.OverdueNotes(r.Context(), owner, time.Now())
	} else {
		notes, err = s.app.NoteService.ListNotes(r.Context(), owner)
	}
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	WriteJSON(w, http.StatusOK, notes)
}

func (s *Server) handleNoteCreate(w http.ResponseWriter, r *http.Request) {
	var note models.Note
	if !DecodeJSON(w, r, &note) {
		return
	}
	if !s.app.Config.HasOwner(string(note.Owner)) {
		WriteError(w, http.StatusBadRequest, "Unknown owner: "+string(note.Owner))
		return
	}

	created, err := s.app.NoteService.AddNote(r.Context(), note)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) handleNoteUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var note models.Note
	if !DecodeJSON(w, r, &note) {
		return
	}
	if !s.app.Config.HasOwner(string(note.Owner)) {
		WriteError(w, http.StatusBadRequest, "Unknown owner: "+string(note.Owner))
		return
	}

	updated, err := s.app.NoteService.UpdateNote(r.Context(), id, note)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.NoteService.DeleteNote(r.Context(), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNoteComplete handles POST /api/notes/{id}/complete. The body may set
// completed to false to reopen a note; an empty body marks it done.
func (s *Server) handleNoteComplete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	id := PathParam(r, "/api/notes/", "/complete")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Note ID is required")
		return
	}

	completed := true
	if r.ContentLength > 0 {
		var body struct {
			Completed *bool `json:"completed"`
		}
		if !DecodeJSON(w, r, &body) {
			return
		}
		if body.Completed != nil {
			completed = *body.Completed
		}
	}

	note, err := s.app.NoteService.SetCompleted(r.Context(), id, completed)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, note)
}
