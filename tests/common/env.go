package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	appcommon "github.com/tandemledger/tandem/internal/common"

	"github.com/tandemledger/tandem/internal/app"
	"github.com/tandemledger/tandem/internal/server"
	"github.com/tandemledger/tandem/internal/services/advisor"
	"github.com/tandemledger/tandem/internal/services/ledger"
	"github.com/tandemledger/tandem/internal/services/notes"
	surrealstorage "github.com/tandemledger/tandem/internal/storage/surrealdb"
)

var envCounter atomic.Int64

// Env is a full application instance over a containerized SurrealDB, served
// through the real handler chain. Each Env gets its own database so tests
// can run in parallel against the shared container.
type Env struct {
	t      *testing.T
	App    *app.App
	server *httptest.Server
}

// NewEnv boots an application environment for an API test. Auth is disabled;
// owners are alex and sam.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	db := StartSurrealDB(t)

	config := appcommon.NewDefaultConfig()
	config.Owners = []string{"alex", "sam"}
	config.Storage.Address = db.Address()
	config.Storage.Namespace = "tandem_test"
	config.Storage.Database = fmt.Sprintf("api_%d_%d", time.Now().UnixNano(), envCounter.Add(1))

	logger := appcommon.NewSilentLogger()

	storage, err := surrealstorage.NewManager(logger, config)
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}

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

	env := &Env{
		t:      t,
		App:    a,
		server: httptest.NewServer(server.NewServer(a).Handler()),
	}
	t.Cleanup(env.Cleanup)
	return env
}

// Cleanup shuts the HTTP server and storage down.
func (e *Env) Cleanup() {
	if e == nil {
		return
	}
	if e.server != nil {
		e.server.Close()
		e.server = nil
	}
	if e.App != nil {
		e.App.Close()
		e.App = nil
	}
}

// Context returns a bounded context for direct service calls.
func (e *Env) Context() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	e.t.Cleanup(cancel)
	return ctx
}

// HTTPRequest sends a request to the environment's server. A non-nil body is
// JSON encoded.
func (e *Env) HTTPRequest(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return http.DefaultClient.Do(req)
}
