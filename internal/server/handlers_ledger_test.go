package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tandemledger/tandem/internal/models"
	"github.com/tandemledger/tandem/internal/services/advisor"
)

func seedBasicLedger(storage *memStorageManager) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	seedTransaction(storage, models.Transaction{Type: models.TxInitialBalance, Date: day(1), Amount: 1000, Owner: "alex"})
	seedTransaction(storage, models.Transaction{Type: models.TxExpense, Date: day(5), Amount: 200, Owner: "alex"})
	seedTransaction(storage, models.Transaction{Type: models.TxIncome, Date: day(10), Amount: 50, Owner: "alex"})
}

func TestSummaryEndpoint(t *testing.T) {
	s, storage := newTestServer()
	seedBasicLedger(storage)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var stats models.LedgerStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.CurrentCash != 850 {
		t.Errorf("current cash = %v, want 850", stats.CurrentCash)
	}
	if stats.TotalPatrimony != 850 {
		t.Errorf("patrimony = %v, want 850", stats.TotalPatrimony)
	}
}

func TestSummaryOwnerFilter(t *testing.T) {
	s, storage := newTestServer()
	seedBasicLedger(storage)
	seedTransaction(storage, models.Transaction{
		Type: models.TxInitialBalance, Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount: 500, Owner: "sam",
	})

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/summary?owner=sam", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var stats models.LedgerStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.CurrentCash != 500 {
		t.Errorf("sam cash = %v, want 500", stats.CurrentCash)
	}

	w = doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/summary?owner=mallory", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown owner status = %d, want 400", w.Code)
	}
}

func TestTrendEndpoint(t *testing.T) {
	s, storage := newTestServer()
	seedBasicLedger(storage)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/trend", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var series []models.TrendPoint
	if err := json.Unmarshal(w.Body.Bytes(), &series); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []float64{1000, 800, 850}
	if len(series) != len(want) {
		t.Fatalf("points = %d, want %d", len(series), len(want))
	}
	for i, v := range want {
		if series[i].Realized != v {
			t.Errorf("point %d realized = %v, want %v", i, series[i].Realized, v)
		}
	}
}

func TestTrendEmptyLedger(t *testing.T) {
	s, _ := newTestServer()
	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/trend", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestTrendChartEndpoint(t *testing.T) {
	s, storage := newTestServer()
	seedBasicLedger(storage)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/trend/chart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	png := w.Body.Bytes()
	if len(png) < 8 || png[1] != 'P' || png[2] != 'N' || png[3] != 'G' {
		t.Error("response is not a PNG")
	}
}

func TestTrendChartTooFewPoints(t *testing.T) {
	s, _ := newTestServer()
	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/trend/chart", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAdviceEndpointFallsBackWithoutClient(t *testing.T) {
	s, storage := newTestServer()
	seedBasicLedger(storage)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/api/ledger/advice", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["advice"] != advisor.FallbackMessage {
		t.Errorf("advice = %q, want fallback", resp["advice"])
	}
	if resp["owner"] != "global" {
		t.Errorf("owner = %q, want global", resp["owner"])
	}
}
