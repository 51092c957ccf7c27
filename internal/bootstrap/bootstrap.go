package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	catalogueinadapter "mente/internal/modules/catalogue/adapter/in"
	catalogueoutadapter "mente/internal/modules/catalogue/adapter/out"
	catalogueservice "mente/internal/modules/catalogue/service"
	catalogueusecase "mente/internal/modules/catalogue/usecase"
	progressinadapter "mente/internal/modules/progress/adapter/in"
	progressoutadapter "mente/internal/modules/progress/adapter/out"
	progressout "mente/internal/modules/progress/port/out"
	progressservice "mente/internal/modules/progress/service"
	progressusecase "mente/internal/modules/progress/usecase"
	sessioninadapter "mente/internal/modules/session/adapter/in"
	sessionoutadapter "mente/internal/modules/session/adapter/out"
	sessionservice "mente/internal/modules/session/service"
	sessionusecase "mente/internal/modules/session/usecase"
	"mente/internal/platform/clock"
	"mente/internal/platform/config"
	"mente/internal/platform/id"
	"mente/internal/platform/logging"
	"mente/internal/platform/random"
	uiapp "mente/internal/ui/app"
)

type App struct {
	Config       config.Config
	CatalogueCLI catalogueinadapter.CLIHandler
	ProgressCLI  progressinadapter.CLIHandler
	// SessionTUI leaves timers to the Bubble Tea loop.
	SessionTUI sessioninadapter.CLIHandler
	// SessionCLI runs timers on Scheduler for line-based play.
	SessionCLI sessioninadapter.CLIHandler
	Scheduler  *sessionoutadapter.TimerScheduler

	closers []io.Closer
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	logCloser, err := logging.Setup(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	app.closers = append(app.closers, logCloser)

	clk := clock.SystemClock{}
	rng := random.System{}

	catalogue, err := catalogueservice.NewCatalogueService(
		rng,
		catalogueoutadapter.NewYAMLPackStore(cfg.PacksDir),
		cfg.MathExercises,
	).Build(ctx)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("build catalogue: %w", err)
	}
	catalogueUC := catalogueusecase.NewInteractor(catalogue)

	store, err := newStateStore(cfg, clk)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(store))
	loaded := progressUC.Load(ctx)

	sessionSvc := sessionservice.NewSessionService(clk, id.UUID{}, rng)
	source := sessionoutadapter.NewCatalogueSource(catalogueUC)
	recorder := sessionoutadapter.NewProgressRecorder(progressUC)
	app.Scheduler = sessionoutadapter.NewTimerScheduler()

	app.CatalogueCLI = catalogueinadapter.NewCLIHandler(catalogueUC)
	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.SessionTUI = sessioninadapter.NewCLIHandler(sessionusecase.NewInteractor(sessionSvc, source, recorder, nil))
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionusecase.NewInteractor(sessionSvc, source, recorder, app.Scheduler))

	slog.Info("mente started",
		"storage", cfg.Storage,
		"exercises", catalogue.Len(),
		"completed", len(loaded.CompletedIDs),
	)
	return app, nil
}

func newStateStore(cfg config.Config, clk clock.Clock) (progressout.StateStore, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := progressoutadapter.NewSQLiteStateStore(cfg.DBPath(), clk)
		if err != nil {
			return nil, fmt.Errorf("new sqlite state store: %w", err)
		}
		return store, nil
	default:
		return progressoutadapter.NewFileStateStore(cfg.StateDir()), nil
	}
}

// Close stops pending timers and releases the store and log file.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CatalogueCLI, app.ProgressCLI, app.SessionTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
