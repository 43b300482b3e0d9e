package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
)

// TransactionStore persists ledger transactions in the "transaction" table.
type TransactionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransactionStore(db *surrealdb.DB, logger *common.Logger) *TransactionStore {
	return &TransactionStore{
		db:     db,
		logger: logger,
	}
}

func (s *TransactionStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := surrealdb.Select[models.Transaction](ctx, s.db, surrealmodels.NewRecordID("transaction", id))
	if err != nil {
		return nil, fmt.Errorf("select transaction: %w: %v", common.ErrStoreUnavailable, err)
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
	}
	return tx, nil
}

// Put upserts the whole record; partial patches are not supported.
func (s *TransactionStore) Put(ctx context.Context, tx *models.Transaction) error {
	sql := "UPSERT $rid CONTENT $tx"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("transaction", tx.ID),
		"tx":  tx,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("put transaction after retries: %w: %v", common.ErrStoreUnavailable, lastErr)
}

func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Transaction](ctx, s.db, surrealmodels.NewRecordID("transaction", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("delete transaction: %w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

// List returns all transactions ordered by date descending, the external
// convention; the ledger core re-sorts ascending before projecting.
func (s *TransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	sql := "SELECT * FROM transaction ORDER BY date DESC"

	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w: %v", common.ErrStoreUnavailable, err)
	}

	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

// ConfirmSale marks the flip sold and creates the proceeds transaction in a
// single multi-statement commit. SurrealDB provides the atomicity boundary:
// either both records change or neither does.
func (s *TransactionStore) ConfirmSale(ctx context.Context, id string, proceeds *models.Transaction) error {
	sql := `
BEGIN TRANSACTION;
UPDATE $sold SET is_sold = true, updated_at = $now;
CREATE $created CONTENT $proceeds;
COMMIT TRANSACTION;
`
	vars := map[string]any{
		"sold":     surrealmodels.NewRecordID("transaction", id),
		"created":  surrealmodels.NewRecordID("transaction", proceeds.ID),
		"proceeds": proceeds,
		"now":      time.Now(),
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("confirm sale: %w: %v", common.ErrStoreUnavailable, err)
	}

	s.logger.Info().Str("id", id).Str("proceeds_id", proceeds.ID).
		Float64("amount", proceeds.Amount).Msg("Sale confirmed")
	return nil
}

func (s *TransactionStore) Close() error {
	return nil
}

// Compile-time check
var _ interfaces.TransactionStore = (*TransactionStore)(nil)
