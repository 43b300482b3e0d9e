// Package surrealdb implements Tandem's storage contracts on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
)

// SchemaVersion is bumped whenever the stored record shapes change in an
// incompatible way. A mismatch at startup surfaces ErrSchemaNotInitialized so
// the operator can run setup instead of silently reading bad data.
const SchemaVersion = "1"

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	transactionStore *TransactionStore
	noteStore        *NoteStore
	internalStore    *InternalStore
}

// NewManager connects to SurrealDB, ensures the tables and schema version
// exist, and wires up the stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("connect to SurrealDB: %w: %v", common.ErrStoreUnavailable, err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("sign in to SurrealDB: %w: %v", common.ErrStoreUnavailable, err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("select namespace/database: %w: %v", common.ErrStoreUnavailable, err)
	}

	// SurrealDB v3 errors on querying non-existent tables.
	tables := []string{"transaction", "note", "user", "system_kv"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("define table %s: %w: %v", table, common.ErrStoreUnavailable, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.transactionStore = NewTransactionStore(db, logger)
	m.noteStore = NewNoteStore(db, logger)
	m.internalStore = NewInternalStore(db, logger)

	if err := m.checkSchemaVersion(ctx); err != nil {
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// checkSchemaVersion stamps the schema version on first boot and rejects a
// mismatched one afterwards.
func (m *Manager) checkSchemaVersion(ctx context.Context) error {
	stored, err := m.internalStore.GetSystemKV(ctx, "schema_version")
	if err != nil || stored == "" {
		if err := m.internalStore.SetSystemKV(ctx, "schema_version", SchemaVersion); err != nil {
			return fmt.Errorf("stamp schema version: %w", err)
		}
		return nil
	}
	if stored != SchemaVersion {
		return fmt.Errorf("found schema version %s, need %s: %w", stored, SchemaVersion, common.ErrSchemaNotInitialized)
	}
	return nil
}

func (m *Manager) TransactionStore() interfaces.TransactionStore {
	return m.transactionStore
}

func (m *Manager) NoteStore() interfaces.NoteStore {
	return m.noteStore
}

func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internalStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// isNotFoundError matches SurrealDB's "no record" failures so deletes of
// already-gone records stay idempotent.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
