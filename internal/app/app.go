package app

import (
	"log/slog"

	"ReceiptLedger/internal/config"
	"ReceiptLedger/internal/extractor"
	"ReceiptLedger/internal/infrastructure/markup"
	"ReceiptLedger/internal/logging"
	"ReceiptLedger/internal/usecase"
)

// Application wires config to the extraction registry and session.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	session *usecase.Session
}

// New builds a runnable application instance with the vendor extractors
// registered.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := extractor.NewRegistry()
	registry.Register(markup.NewKrogerExtractor(baseLogger.With("component", "extractor.kroger")))

	session := usecase.NewSession(usecase.Deps{
		Registry:       registry,
		Logger:         baseLogger.With("component", "session"),
		StoreName:      cfg.Store,
		KeyFields:      cfg.KeyFields(),
		GroupLocalSpan: cfg.Summary.GroupLocalSpan(),
	})

	return &Application{cfg: cfg, logger: baseLogger, session: session}
}

// Session exposes the single in-memory session model.
func (a *Application) Session() *usecase.Session {
	return a.session
}

// Logger exposes the base logger for host surfaces.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}
