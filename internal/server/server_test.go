package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tandemledger/tandem/internal/app"
	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
	"github.com/tandemledger/tandem/internal/services/advisor"
	"github.com/tandemledger/tandem/internal/services/ledger"
	"github.com/tandemledger/tandem/internal/services/notes"
)

// In-memory stores backing handler tests. The real services run on top so
// requests exercise validation and derived views end to end.

type memTransactionStore struct {
	records map[string]models.Transaction
}

func (m *memTransactionStore) Get(_ context.Context, id string) (*models.Transaction, error) {
	tx, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
	}
	return &tx, nil
}

func (m *memTransactionStore) Put(_ context.Context, tx *models.Transaction) error {
	m.records[tx.ID] = *tx
	return nil
}

func (m *memTransactionStore) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *memTransactionStore) List(_ context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range m.records {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memTransactionStore) ConfirmSale(_ context.Context, id string, proceeds *models.Transaction) error {
	tx, ok := m.records[id]
	if !ok {
		return fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
	}
	tx.IsSold = true
	m.records[id] = tx
	m.records[proceeds.ID] = *proceeds
	return nil
}

func (m *memTransactionStore) Close() error { return nil }

type memNoteStore struct {
	records map[string]models.Note
}

func (m *memNoteStore) Get(_ context.Context, id string) (*models.Note, error) {
	n, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("note %q: %w", id, common.ErrNotFound)
	}
	return &n, nil
}

func (m *memNoteStore) Put(_ context.Context, note *models.Note) error {
	m.records[note.ID] = *note
	return nil
}

func (m *memNoteStore) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *memNoteStore) List(_ context.Context) ([]models.Note, error) {
	var out []models.Note
	for _, n := range m.records {
		out = append(out, n)
	}
	return out, nil
}

func (m *memNoteStore) Close() error { return nil }

type memInternalStore struct {
	users map[string]models.UserAccount
	kv    map[string]string
}

func (m *memInternalStore) GetUser(_ context.Context, username string) (*models.UserAccount, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	return &u, nil
}

func (m *memInternalStore) SaveUser(_ context.Context, user *models.UserAccount) error {
	m.users[user.Username] = *user
	return nil
}

func (m *memInternalStore) ListUsers(_ context.Context) ([]string, error) {
	var out []string
	for name := range m.users {
		out = append(out, name)
	}
	return out, nil
}

func (m *memInternalStore) GetSystemKV(_ context.Context, key string) (string, error) {
	v, ok := m.kv[key]
	if !ok {
		return "", fmt.Errorf("system kv %q: %w", key, common.ErrNotFound)
	}
	return v, nil
}

func (m *memInternalStore) SetSystemKV(_ context.Context, key, value string) error {
	m.kv[key] = value
	return nil
}

func (m *memInternalStore) Close() error { return nil }

type memStorageManager struct {
	transactions *memTransactionStore
	notes        *memNoteStore
	internal     *memInternalStore
}

func newMemStorageManager() *memStorageManager {
	return &memStorageManager{
		transactions: &memTransactionStore{records: make(map[string]models.Transaction)},
		notes:        &memNoteStore{records: make(map[string]models.Note)},
		internal:     &memInternalStore{users: make(map[string]models.UserAccount), kv: make(map[string]string)},
	}
}

func (m *memStorageManager) TransactionStore() interfaces.TransactionStore { return m.transactions }
func (m *memStorageManager) NoteStore() interfaces.NoteStore               { return m.notes }
func (m *memStorageManager) InternalStore() interfaces.InternalStore       { return m.internal }
func (m *memStorageManager) Close() error                                  { return nil }

// newTestServer builds a server over in-memory storage with auth disabled.
func newTestServer() (*Server, *memStorageManager) {
	storage := newMemStorageManager()
	logger := common.NewSilentLogger()

	config := common.NewDefaultConfig()
	config.Owners = []string{"alex", "sam"}
	config.Auth.JWTSecret = ""

	ledgerService := ledger.NewService(storage, logger)

	a := &app.App{
		Config:         config,
		Logger:         logger,
		Storage:        storage,
		LedgerService:  ledgerService,
		NoteService:    notes.NewService(storage, logger),
		AdvisorService: advisor.NewService(ledgerService, nil, logger),
		StartupTime:    time.Now(),
	}
	return NewServer(a), storage
}

// seedTransaction bypasses the API to place a record directly in storage.
func seedTransaction(storage *memStorageManager, tx models.Transaction) models.Transaction {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	storage.transactions.records[tx.ID] = tx
	return tx
}

func doRequest(s *Server, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}
