// Package app wires configuration, storage, clients, and services into a
// single application core shared by the server binary and its tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tandemledger/tandem/internal/clients/gemini"
	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/services/advisor"
	"github.com/tandemledger/tandem/internal/services/ledger"
	"github.com/tandemledger/tandem/internal/services/notes"
	surrealstorage "github.com/tandemledger/tandem/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Storage        interfaces.StorageManager
	GeminiClient   interfaces.GenAIClient
	LedgerService  interfaces.LedgerService
	NoteService    interfaces.NoteService
	AdvisorService interfaces.AdvisorService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services from configuration.
// configPath may be empty, in which case TANDEM_CONFIG and then the binary
// directory are consulted.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("TANDEM_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "tandem.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/tandem.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealstorage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var geminiClient interfaces.GenAIClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - advisor will use fallback text")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - advisor will use fallback text")
	}

	ledgerService := ledger.NewService(storageManager, logger)
	noteService := notes.NewService(storageManager, logger)
	advisorService := advisor.NewService(ledgerService, geminiClient, logger)

	a := &App{
		Config:         config,
		Logger:         logger,
		Storage:        storageManager,
		GeminiClient:   geminiClient,
		LedgerService:  ledgerService,
		NoteService:    noteService,
		AdvisorService: advisorService,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).
		Strs("owners", config.Owners).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.GeminiClient != nil {
		a.GeminiClient.Close()
		a.GeminiClient = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
