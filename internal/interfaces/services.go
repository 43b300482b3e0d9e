package interfaces

import (
	"context"
	"time"

	"github.com/tandemledger/tandem/internal/models"
)

// LedgerService manages the transaction ledger and its derived views. All
// derived values are computed over a full snapshot re-fetched from storage;
// there is no incremental update path.
type LedgerService interface {
	// ListTransactions returns the full snapshot, date descending.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	// AddTransaction validates and persists a new transaction. Client order
	// expected profit is derived and frozen here.
	AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)

	// UpdateTransaction replaces the record with the given ID.
	UpdateTransaction(ctx context.Context, id string, tx models.Transaction) (*models.Transaction, error)

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, id string) error

	// ConfirmSale closes an unsold flip: marks it sold and synthesizes the
	// proceeds income transaction as one atomic storage intent. Returns the
	// synthesized transaction.
	ConfirmSale(ctx context.Context, id string) (*models.Transaction, error)

	// Summary computes summary totals and patrimony for an owner filter.
	Summary(ctx context.Context, owner models.Owner) (*models.LedgerStats, error)

	// Trend computes the balance trend time series for an owner filter.
	Trend(ctx context.Context, owner models.Owner) ([]models.TrendPoint, error)

	// TrendChart renders the trend series as a PNG.
	TrendChart(ctx context.Context, owner models.Owner) ([]byte, error)

	// Subscribe registers for change notifications. Every mutation publishes
	// a "recompute now" signal with no payload; the returned cancel func
	// must be called to release the subscription.
	Subscribe() (<-chan struct{}, func())
}

// NoteService manages goal/reminder notes.
type NoteService interface {
	ListNotes(ctx context.Context, owner models.Owner) ([]models.Note, error)
	AddNote(ctx context.Context, note models.Note) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, note models.Note) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Note, error)
	OverdueNotes(ctx context.Context, owner models.Owner, now time.Time) ([]models.Note, error)
}

// AdvisorService produces a human-readable advisory summary of the ledger.
// It is a pure request/response collaborator: it never mutates ledger state
// and never surfaces an error to its caller; failures yield a fallback
// message instead.
type AdvisorService interface {
	Advise(ctx context.Context, owner models.Owner) string
}
