// Package cli wires the navigation core for the cobra commands and the Bubble Tea TUI.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/application/store"
	"github.com/bnema/tabnav/internal/application/usecase"
	"github.com/bnema/tabnav/internal/cli/styles"
	"github.com/bnema/tabnav/internal/domain/build"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/infrastructure/config"
	"github.com/bnema/tabnav/internal/infrastructure/location"
	"github.com/bnema/tabnav/internal/infrastructure/persistence/file"
	"github.com/bnema/tabnav/internal/infrastructure/persistence/memory"
	"github.com/bnema/tabnav/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabnav/internal/infrastructure/snapshot"
	"github.com/bnema/tabnav/internal/logging"
	"github.com/bnema/tabnav/internal/ui/coordinator"
)

// AppOptions tunes NewApp.
type AppOptions struct {
	// Interactive sends logs to the rotating log file instead of stderr,
	// which the TUI owns.
	Interactive bool
	// Fragment is the deep link the instance starts on, if any.
	Fragment string
	Viewer   entity.Viewer
}

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	Theme      *styles.Theme
	BuildInfo  build.Info
	Tree       *entity.TabTree
	Store      *store.Store
	Snapshot   *snapshot.Service
	Restored   *usecase.RestoreOutput
	Location   *location.Memory
	Viewer     entity.Viewer
	InstanceID string

	// Slot and Notifier are the durable backend; Notifier is nil for
	// backends without sibling change reports.
	Slot     repository.StateSlot
	Notifier port.ChangeNotifier

	cfgMgr *config.Manager
	db     *sql.DB

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and tab tree, restores the last snapshot and
// starts the persistence service.
func NewApp(opts AppOptions) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	instanceID := logging.GenerateInstanceID()
	logger, logCleanup, err := newLogger(cfg, opts.Interactive)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)
	ctx = logging.WithInstanceID(ctx, instanceID)

	app := &App{
		Config:     cfg,
		Theme:      styles.NewTheme(),
		Viewer:     opts.Viewer,
		InstanceID: instanceID,
		cfgMgr:     mgr,
		ctx:        ctx,
		logCleanup: logCleanup,
	}

	if err := app.init(opts); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) init(opts AppOptions) error {
	ctx := a.ctx
	cfg := a.Config
	log := logging.FromContext(ctx)

	tree, err := config.LoadTabTree(cfg.Navigation.TabsFile)
	if err != nil {
		return fmt.Errorf("load tab tree: %w", err)
	}
	a.Tree = tree

	if err := a.openBackend(ctx); err != nil {
		return err
	}

	key := cfg.Persistence.Key
	defaultTab := entity.TabID(cfg.Navigation.DefaultTab)
	restoreUC := usecase.NewRestoreStateUseCase(a.Slot, key, tree, defaultTab)
	a.Restored = restoreUC.Execute(ctx)

	reducer := navigation.NewReducer(tree, restoreUC.Default(), cfg.Navigation.MaxHistory)
	a.Store = store.New(ctx, reducer, a.Restored.State, nil)

	a.Snapshot = snapshot.NewService(snapshot.Config{
		Store:    a.Store,
		Snapshot: usecase.NewSnapshotStateUseCase(a.Slot, key),
		Restore:  restoreUC,
		End:      usecase.NewEndSessionUseCase(a.Slot, key),
		Notifier: a.Notifier,
		Key:      key,
		Debounce: time.Duration(cfg.Persistence.DebounceMs) * time.Millisecond,
	})
	if err := a.Snapshot.Start(ctx, a.Restored.Raw); err != nil {
		return fmt.Errorf("start snapshot service: %w", err)
	}

	a.Location = location.NewMemory(opts.Fragment)

	log.Debug().
		Str("backend", string(cfg.Persistence.Backend)).
		Bool("persist", cfg.Persistence.Enabled).
		Bool("restored", a.Restored.FromSnapshot).
		Int("tabs", tree.Len()).
		Msg("app initialized")
	return nil
}

// openBackend picks the durable slot the config asks for. Disabled
// persistence keeps everything in process memory.
func (a *App) openBackend(ctx context.Context) error {
	p := a.Config.Persistence

	if !p.Enabled || p.Backend == config.BackendMemory {
		slot := memory.NewSlot(int(p.MaxBytes))
		a.Slot, a.Notifier = slot, slot
		return nil
	}

	switch p.Backend {
	case config.BackendSQLite:
		db, err := sqlite.NewConnection(ctx, filepath.Join(p.Dir, sqlite.DatabaseName))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		a.db = db
		repo := sqlite.NewStateSlotRepository(db, a.InstanceID, p.MaxBytes,
			time.Duration(p.PollIntervalMs)*time.Millisecond)
		a.Slot, a.Notifier = repo, repo
	default:
		slot, err := file.NewSlot(p.Dir, p.MaxBytes)
		if err != nil {
			return fmt.Errorf("open state dir: %w", err)
		}
		a.Slot, a.Notifier = slot, slot
	}
	return nil
}

// NewNavigator builds the navigation coordinator for this instance.
func (a *App) NewNavigator() *coordinator.NavigationCoordinator {
	return coordinator.NewNavigationCoordinator(a.ctx, a.Store, coordinator.NavigationOptions{
		Location: a.Location,
		Wrap:     a.Config.Navigation.WrapKeyboard,
		Viewer:   a.Viewer,
	})
}

// WatchConfig reloads the config file on change and hands every new
// configuration to fn.
func (a *App) WatchConfig(fn func(*config.Config)) error {
	a.cfgMgr.OnConfigChange(func(cfg *config.Config) {
		logging.FromContext(a.ctx).Info().Str("file", a.cfgMgr.GetConfigFile()).Msg("config reloaded")
		fn(cfg)
	})
	return a.cfgMgr.Watch()
}

// Close flushes pending state and releases all resources.
func (a *App) Close() error {
	var firstErr error
	if a.Snapshot != nil {
		if err := a.Snapshot.Stop(a.ctx); err != nil {
			logging.FromContext(a.ctx).Warn().Err(err).Msg("final snapshot failed")
			firstErr = err
		}
	}
	if a.Store != nil {
		a.Store.Dispose()
	}
	if a.db != nil {
		if err := sqlite.Close(a.db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return firstErr
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

func newLogger(cfg *config.Config, interactive bool) (zerolog.Logger, func(), error) {
	if !interactive {
		return logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format), func() {}, nil
	}

	rotator, err := logging.NewFileRotator(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     rotator,
	})
	return logger, func() { _ = rotator.Close() }, nil
}
