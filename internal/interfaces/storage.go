// Package interfaces defines service and storage contracts for Tandem.
package interfaces

import (
	"context"

	"github.com/tandemledger/tandem/internal/models"
)

// StorageManager coordinates all storage backends.
type StorageManager interface {
	TransactionStore() TransactionStore
	NoteStore() NoteStore
	InternalStore() InternalStore

	// Lifecycle
	Close() error
}

// TransactionStore persists ledger transactions. Records are replaced whole
// on update; the store never patches fields.
type TransactionStore interface {
	Get(ctx context.Context, id string) (*models.Transaction, error)
	Put(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id string) error

	// List returns the full transaction set ordered by date descending (the
	// external convention; the ledger core re-sorts internally).
	List(ctx context.Context) ([]models.Transaction, error)

	// ConfirmSale marks the flip sold and creates the proceeds transaction
	// as one atomic commit. The storage backend provides the transaction
	// boundary; callers never issue the two writes independently.
	ConfirmSale(ctx context.Context, id string, proceeds *models.Transaction) error

	Close() error
}

// NoteStore persists goal/reminder notes.
type NoteStore interface {
	Get(ctx context.Context, id string) (*models.Note, error)
	Put(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Note, error)
	Close() error
}

// InternalStore manages the co-investor accounts and system-level KV
// (schema version, setup flags).
type InternalStore interface {
	GetUser(ctx context.Context, username string) (*models.UserAccount, error)
	SaveUser(ctx context.Context, user *models.UserAccount) error
	ListUsers(ctx context.Context) ([]string, error)

	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}
