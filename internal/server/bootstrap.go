package server

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/lessensdelharmonie/harmonie/internal/api/validation"
	"github.com/lessensdelharmonie/harmonie/internal/config"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/service"
	"github.com/lessensdelharmonie/harmonie/internal/telemetry"
	"github.com/lessensdelharmonie/harmonie/internal/version"
)

// Run wires the logger, submission journal, tracing and error reporting,
// then serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.Logging())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	logger.Info("Starting %s in %s mode", version.Info(), cfg.Environment)

	journal, err := logging.NewRotatingWriter(cfg.SubmissionsLogFile, cfg.LogMaxSize, cfg.LogMaxBackups, cfg.LogMaxAge)
	if err != nil {
		return fmt.Errorf("failed to open submission journal: %w", err)
	}
	defer journal.Close()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    version.ServiceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		OTLPInsecure:   cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("%v", err)
		}
	}()
	if tp.Exporting() {
		logger.Info("Exporting traces to %s", cfg.OTLPEndpoint)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     version.Version,
		}); err != nil {
			// Reporting is optional; keep serving without it
			logger.Error("Failed to initialize Sentry: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	contactService := service.NewContactService(
		validation.New(),
		service.NewJournalRecorder(journal),
		logger,
		cfg.PhoneRegion,
	)

	return NewServer(cfg, logger, contactService).Start(ctx)
}
