package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/renan-b-eth/Automacao-Diario/internal/config"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/doe"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/extract"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/fetch"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/history"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/parser"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/scheduler"
	"github.com/renan-b-eth/Automacao-Diario/internal/infrastructure/whatsapp"
	"github.com/renan-b-eth/Automacao-Diario/internal/logging"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
	"github.com/renan-b-eth/Automacao-Diario/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := buildHistoryStore(cfg.History)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(nil, cfg.Crawler.UserAgent, cfg.Crawler.Timeout())

	analyzer := usecase.NewAnalyzer(fetcher, extract.New(), cfg.TrackedName)

	doeClient := doe.NewClient(doe.Options{
		APIBase:    cfg.DOE.APIBase,
		SiteBase:   cfg.DOE.SiteBase,
		JournalID:  cfg.DOE.JournalID,
		SearchDays: cfg.DOE.SearchDays,
		PageSize:   cfg.DOE.PageSize,
		UserAgent:  cfg.Crawler.UserAgent,
	})

	notifier := whatsapp.NewNotifier(
		cfg.Notifications.CallMeBot.Phone,
		cfg.Notifications.CallMeBot.APIKey,
		cfg.Notifications.CallMeBot.MinInterval(),
		baseLogger.With("component", "notifier"),
	)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:     cfg.DomainSources(),
		TrackedName: cfg.TrackedName,
		Fetcher:     fetcher,
		Listing:     parser.NewListingParser(cfg.Crawler.MaxProcessesPerPage),
		Process:     parser.NewProcessParser(),
		History:     store,
		Analyzer:    analyzer,
		DOE:         doeClient,
		Notifier:    notifier,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}, nil
}

// Run executes a single crawl, or keeps running on the configured cron
// schedule when one is set.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	spec := a.cfg.Scheduler.CronExpression
	if spec == "" {
		return a.pipeline.Run(ctx)
	}

	driver := scheduler.NewCronScheduler(spec, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))
	if err := runner.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return runner.Stop(context.Background())
}

func buildHistoryStore(cfg config.HistoryConfig) (ports.HistoryStore, error) {
	switch cfg.Driver {
	case "", "file":
		return history.NewFileStore(cfg.File), nil
	case "postgres":
		store, err := history.OpenPostgresStore(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
}
