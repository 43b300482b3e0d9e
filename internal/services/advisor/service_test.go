package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/models"
)

type mockGenAI struct {
	response string
	err      error
	prompts  []string
}

func (m *mockGenAI) GenerateContent(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockGenAI) Close() error { return nil }

// stubLedger serves canned data; only the read paths the advisor touches are
// implemented.
type stubLedger struct {
	stats models.LedgerStats
	txs   []models.Transaction
	err   error
}

func (s *stubLedger) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	return s.txs, s.err
}

func (s *stubLedger) Summary(_ context.Context, _ models.Owner) (*models.LedgerStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	stats := s.stats
	return &stats, nil
}

func (s *stubLedger) AddTransaction(context.Context, models.Transaction) (*models.Transaction, error) {
	panic("not implemented")
}
func (s *stubLedger) UpdateTransaction(context.Context, string, models.Transaction) (*models.Transaction, error) {
	panic("not implemented")
}
func (s *stubLedger) DeleteTransaction(context.Context, string) error { panic("not implemented") }
func (s *stubLedger) ConfirmSale(context.Context, string) (*models.Transaction, error) {
	panic("not implemented")
}
func (s *stubLedger) Trend(context.Context, models.Owner) ([]models.TrendPoint, error) {
	panic("not implemented")
}
func (s *stubLedger) TrendChart(context.Context, models.Owner) ([]byte, error) {
	panic("not implemented")
}
func (s *stubLedger) Subscribe() (<-chan struct{}, func()) { panic("not implemented") }

func testStats() models.LedgerStats {
	return models.LedgerStats{
		Income:           1200,
		Expense:          300,
		CurrentCash:      850,
		ActiveStockValue: 100,
		LatentProfit:     20,
		TotalPatrimony:   970,
		Projects: []models.ActiveProject{
			{Name: "vintage amp", TotalSpent: 100, PotentialProfit: 20, TotalExpectedReturn: 120},
		},
	}
}

func TestAdviseBuildsPromptFromLedger(t *testing.T) {
	genai := &mockGenAI{response: "Cash looks healthy. Keep the amp listed."}
	ledger := &stubLedger{
		stats: testStats(),
		txs: []models.Transaction{
			{Type: models.TxExpense, Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Amount: 30, Owner: "alex", Category: "fuel"},
			{Type: models.TxIncome, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 100, Owner: "alex", IsForecast: true},
		},
	}
	svc := NewService(ledger, genai, common.NewSilentLogger())

	advice := svc.Advise(context.Background(), models.OwnerGlobal)
	if advice != "Cash looks healthy. Keep the amp listed." {
		t.Errorf("advice = %q", advice)
	}

	if len(genai.prompts) != 1 {
		t.Fatalf("prompts sent = %d, want 1", len(genai.prompts))
	}
	prompt := genai.prompts[0]
	for _, want := range []string{"850.00", "100.00", "20.00", "970.00", "vintage amp", "fuel"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "2025-04-01") {
		t.Error("forecast transaction leaked into recent activity")
	}
}

func TestAdviseOwnerScopedPrompt(t *testing.T) {
	genai := &mockGenAI{response: "ok"}
	svc := NewService(&stubLedger{stats: testStats()}, genai, common.NewSilentLogger())

	svc.Advise(context.Background(), "sam")
	if !strings.Contains(genai.prompts[0], "sam's share") {
		t.Errorf("prompt not scoped to owner: %q", genai.prompts[0])
	}
}

func TestAdviseFallsBackOnClientError(t *testing.T) {
	genai := &mockGenAI{err: errors.New("quota exceeded")}
	svc := NewService(&stubLedger{stats: testStats()}, genai, common.NewSilentLogger())

	if got := svc.Advise(context.Background(), models.OwnerGlobal); got != FallbackMessage {
		t.Errorf("advice = %q, want fallback", got)
	}
}

func TestAdviseFallsBackOnEmptyResponse(t *testing.T) {
	genai := &mockGenAI{response: "   \n"}
	svc := NewService(&stubLedger{stats: testStats()}, genai, common.NewSilentLogger())

	if got := svc.Advise(context.Background(), models.OwnerGlobal); got != FallbackMessage {
		t.Errorf("advice = %q, want fallback", got)
	}
}

func TestAdviseFallsBackOnStorageError(t *testing.T) {
	genai := &mockGenAI{response: "unused"}
	svc := NewService(&stubLedger{err: common.ErrStoreUnavailable}, genai, common.NewSilentLogger())

	if got := svc.Advise(context.Background(), models.OwnerGlobal); got != FallbackMessage {
		t.Errorf("advice = %q, want fallback", got)
	}
	if len(genai.prompts) != 0 {
		t.Error("client called despite storage failure")
	}
}

func TestAdviseWithoutClient(t *testing.T) {
	svc := NewService(&stubLedger{stats: testStats()}, nil, common.NewSilentLogger())

	if got := svc.Advise(context.Background(), models.OwnerGlobal); got != FallbackMessage {
		t.Errorf("advice = %q, want fallback", got)
	}
}
