package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
)

// NoteStore persists goal/reminder notes in the "note" table.
type NoteStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewNoteStore(db *surrealdb.DB, logger *common.Logger) *NoteStore {
	return &NoteStore{
		db:     db,
		logger: logger,
	}
}

func (s *NoteStore) Get(ctx context.Context, id string) (*models.Note, error) {
	note, err := surrealdb.Select[models.Note](ctx, s.db, surrealmodels.NewRecordID("note", id))
	if err != nil {
		return nil, fmt.Errorf("select note: %w: %v", common.ErrStoreUnavailable, err)
	}
	if note == nil {
		return nil, fmt.Errorf("note %q: %w", id, common.ErrNotFound)
	}
	return note, nil
}

func (s *NoteStore) Put(ctx context.Context, note *models.Note) error {
	sql := "UPSERT $rid CONTENT $note"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("note", note.ID),
		"note": note,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Note](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("put note after retries: %w: %v", common.ErrStoreUnavailable, lastErr)
}

func (s *NoteStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Note](ctx, s.db, surrealmodels.NewRecordID("note", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("delete note: %w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

// List returns all notes, soonest deadline first, undated notes last.
func (s *NoteStore) List(ctx context.Context) ([]models.Note, error) {
	sql := "SELECT * FROM note ORDER BY deadline ASC"

	results, err := surrealdb.Query[[]models.Note](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w: %v", common.ErrStoreUnavailable, err)
	}

	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func (s *NoteStore) Close() error {
	return nil
}

// Compile-time check
var _ interfaces.NoteStore = (*NoteStore)(nil)
