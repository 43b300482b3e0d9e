// Package notes manages goal and reminder notes.
package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
)

// Compile-time interface check
var _ interfaces.NoteService = (*Service)(nil)

// Service implements NoteService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new note service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// ListNotes returns notes visible to the owner filter, soonest deadline
// first as stored.
func (s *Service) ListNotes(ctx context.Context, owner models.Owner) ([]models.Note, error) {
	all, err := s.storage.NoteStore().List(ctx)
	if err != nil {
		return nil, err
	}
	if owner.IsGlobal() {
		return all, nil
	}
	var out []models.Note
	for _, n := range all {
		if n.Owner == owner {
			out = append(out, n)
		}
	}
	return out, nil
}

// AddNote validates and persists a new note.
func (s *Service) AddNote(ctx context.Context, note models.Note) (*models.Note, error) {
	now := time.Now()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now
	normalize(&note)

	if err := note.Validate(); err != nil {
		return nil, fmt.Errorf("invalid note: %w", err)
	}

	if err := s.storage.NoteStore().Put(ctx, &note); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", note.ID).Str("owner", string(note.Owner)).Msg("Note added")
	return &note, nil
}

// UpdateNote replaces the note with the given ID wholesale.
func (s *Service) UpdateNote(ctx context.Context, id string, note models.Note) (*models.Note, error) {
	existing, err := s.storage.NoteStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	note.ID = existing.ID
	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = time.Now()
	normalize(&note)

	if err := note.Validate(); err != nil {
		return nil, fmt.Errorf("invalid note: %w", err)
	}

	if err := s.storage.NoteStore().Put(ctx, &note); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("Note updated")
	return &note, nil
}

// DeleteNote removes a note by ID.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if err := s.storage.NoteStore().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Note deleted")
	return nil
}

// SetCompleted flips only the completion flag, leaving the rest of the note
// untouched.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (*models.Note, error) {
	note, err := s.storage.NoteStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	note.IsCompleted = completed
	note.UpdatedAt = time.Now()

	if err := s.storage.NoteStore().Put(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Bool("completed", completed).Msg("Note completion set")
	return note, nil
}

// OverdueNotes returns the incomplete notes whose deadline has passed.
func (s *Service) OverdueNotes(ctx context.Context, owner models.Owner, now time.Time) ([]models.Note, error) {
	visible, err := s.ListNotes(ctx, owner)
	if err != nil {
		return nil, err
	}
	var out []models.Note
	for _, n := range visible {
		if n.IsOverdue(now) {
			out = append(out, n)
		}
	}
	return out, nil
}

func normalize(note *models.Note) {
	note.Title = strings.TrimSpace(note.Title)
	note.Body = strings.TrimSpace(note.Body)
}
