// Package ledger provides the transaction ledger service: CRUD over the
// storage collaborator, derived balance views, and the sale-confirmation
// state transition.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tandemledger/tandem/internal/balance"
	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
)

// Compile-time interface check
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService. The derived views re-fetch the full
// snapshot from storage on every call; nothing is cached or patched
// incrementally.
type Service struct {
	storage interfaces.StorageManager
	feed    *Feed
	logger  *common.Logger
}

// NewService creates a new ledger service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		feed:    NewFeed(),
		logger:  logger,
	}
}

// ListTransactions returns the full snapshot, date descending.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.storage.TransactionStore().List(ctx)
}

// AddTransaction validates and persists a new transaction. For client orders
// the expected profit is derived from product price and fee percentage here
// and frozen into the record.
func (s *Service) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	now := time.Now()
	tx.ID = uuid.New().String()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	normalize(&tx)

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	if err := s.storage.TransactionStore().Put(ctx, &tx); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", tx.ID).Str("type", string(tx.Type)).
		Str("owner", string(tx.Owner)).Float64("amount", tx.Amount).
		Msg("Transaction added")
	s.feed.Publish()
	return &tx, nil
}

// UpdateTransaction replaces the record with the given ID wholesale.
func (s *Service) UpdateTransaction(ctx context.Context, id string, tx models.Transaction) (*models.Transaction, error) {
	existing, err := s.storage.TransactionStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tx.ID = existing.ID
	tx.CreatedAt = existing.CreatedAt
	tx.UpdatedAt = time.Now()
	normalize(&tx)

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	if err := s.storage.TransactionStore().Put(ctx, &tx); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("Transaction updated")
	s.feed.Publish()
	return &tx, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.storage.TransactionStore().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Transaction deleted")
	s.feed.Publish()
	return nil
}

// ConfirmSale closes an unsold flip. The original keeps its amount, expected
// profit, and type; only is_sold flips to true. The proceeds land in a new
// income transaction dated now, itself marked sold so it can never surface as
// an active project. Both writes go to storage as one atomic intent.
func (s *Service) ConfirmSale(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.storage.TransactionStore().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tx.IsFlip() {
		return nil, fmt.Errorf("transaction %q is a %s, not a flip", id, tx.Type)
	}
	if tx.IsSold {
		return nil, fmt.Errorf("transaction %q is already sold", id)
	}

	now := time.Now()
	proceeds := &models.Transaction{
		ID:        uuid.New().String(),
		Type:      models.TxIncome,
		Date:      now,
		Amount:    tx.SaleProceeds(),
		Category:  tx.Category,
		Account:   tx.Account,
		Owner:     tx.Owner,
		Note:      saleNote(tx),
		IsSold:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.TransactionStore().ConfirmSale(ctx, id, proceeds); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Str("proceeds_id", proceeds.ID).
		Float64("proceeds", proceeds.Amount).Msg("Flip closed")
	s.feed.Publish()
	return proceeds, nil
}

// Summary re-fetches the snapshot and computes summary totals for the filter.
func (s *Service) Summary(ctx context.Context, owner models.Owner) (*models.LedgerStats, error) {
	txs, err := s.storage.TransactionStore().List(ctx)
	if err != nil {
		return nil, err
	}
	stats := balance.Summarize(txs, owner)
	return &stats, nil
}

// Trend re-fetches the snapshot and computes the balance trend series.
func (s *Service) Trend(ctx context.Context, owner models.Owner) ([]models.TrendPoint, error) {
	txs, err := s.storage.TransactionStore().List(ctx)
	if err != nil {
		return nil, err
	}
	return balance.Trend(txs, owner), nil
}

// TrendChart renders the trend series as a PNG.
func (s *Service) TrendChart(ctx context.Context, owner models.Owner) ([]byte, error) {
	series, err := s.Trend(ctx, owner)
	if err != nil {
		return nil, err
	}
	return RenderTrendChart(series, owner)
}

// Subscribe registers for mutation notifications.
func (s *Service) Subscribe() (<-chan struct{}, func()) {
	return s.feed.Subscribe()
}

// normalize trims free-text fields and freezes derived values.
func normalize(tx *models.Transaction) {
	tx.Category = strings.TrimSpace(tx.Category)
	tx.Note = strings.TrimSpace(tx.Note)
	tx.ProjectName = strings.TrimSpace(tx.ProjectName)
	tx.ClientName = strings.TrimSpace(tx.ClientName)

	if tx.Type == models.TxClientOrder && tx.ProductPrice != nil && tx.FeePercentage != nil {
		profit := models.ComputeExpectedProfit(*tx.ProductPrice, *tx.FeePercentage)
		tx.ExpectedProfit = &profit
		// A client order's own amount is meaningless; the money is the
		// client's until the fee is realized.
		tx.Amount = 0
	}
}

// saleNote builds the proceeds note referencing the sold project.
func saleNote(tx *models.Transaction) string {
	name := tx.ProjectName
	if name == "" {
		name = tx.ClientName
	}
	if name == "" {
		name = tx.ID
	}
	return fmt.Sprintf("Sale of %s", name)
}
