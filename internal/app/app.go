package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/hoidap/internal/common"
	"github.com/ternarybob/hoidap/internal/handlers"
	"github.com/ternarybob/hoidap/internal/interfaces"
	"github.com/ternarybob/hoidap/internal/services/answer"
	"github.com/ternarybob/hoidap/internal/services/cache"
	"github.com/ternarybob/hoidap/internal/services/documents"
	"github.com/ternarybob/hoidap/internal/services/extractive"
	"github.com/ternarybob/hoidap/internal/services/intent"
	"github.com/ternarybob/hoidap/internal/services/lexicon"
	"github.com/ternarybob/hoidap/internal/services/llm"
	"github.com/ternarybob/hoidap/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB        *badger.BadgerDB
	KVStorage interfaces.KeyValueStorage

	// Core services
	Lexicon           *lexicon.Lexicon
	DocumentService   interfaces.DocumentService
	ExtractiveService interfaces.ExtractiveService
	Providers         *llm.Providers
	IntentService     interfaces.IntentService
	AnswerService     interfaces.AnswerService
	AnswerCache       *cache.Service

	// HTTP handlers
	ChatHandler     *handlers.ChatHandler
	IntentHandler   *handlers.IntentHandler
	DocumentHandler *handlers.DocumentHandler
	SearchHandler   *handlers.SearchHandler
	KVHandler       *handlers.KVHandler
	StatusHandler   *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Storage
	db, err := badger.NewBadgerDB(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.DB = db
	app.KVStorage = badger.NewKVStorage(db, logger)

	// Core services
	app.Lexicon = lexicon.New()
	app.DocumentService = documents.NewStore(&cfg.Store, app.Lexicon, logger)
	app.ExtractiveService = extractive.NewClient(&cfg.Extractive, logger)

	gemini := llm.NewGeminiService(&cfg.Gemini, app.KVStorage, logger)
	claude := llm.NewClaudeService(&cfg.Claude, app.KVStorage, logger)
	app.Providers = llm.NewProviders(gemini, claude, &cfg.LLM)

	app.IntentService = intent.NewAnalyzer(
		app.DocumentService,
		app.Lexicon,
		app.ExtractiveService,
		app.Providers,
		cfg.Intent.ConfidenceThreshold,
		logger,
	)
	app.AnswerService = answer.NewOrchestrator(
		app.DocumentService,
		app.Lexicon,
		app.ExtractiveService,
		app.Providers,
		logger,
	)

	if cfg.Cache.Enabled {
		ttl := common.ParseDuration(cfg.Cache.TTL, 5*time.Minute)
		app.AnswerCache = cache.NewService(cfg.Cache.MaxEntries, ttl, logger)
	}

	// HTTP handlers
	app.ChatHandler = handlers.NewChatHandler(app.AnswerService, app.AnswerCache, logger)
	app.IntentHandler = handlers.NewIntentHandler(app.IntentService, logger)
	app.DocumentHandler = handlers.NewDocumentHandler(app.DocumentService, logger)
	app.SearchHandler = handlers.NewSearchHandler(app.DocumentService, logger)
	app.KVHandler = handlers.NewKVHandler(app.KVStorage, logger)
	app.StatusHandler = handlers.NewStatusHandler(app.DocumentService, app.ExtractiveService, logger)

	logger.Info().
		Int("documents", app.DocumentService.Count()).
		Str("default_provider", string(app.Providers.Default())).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
