package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/abhisek/gopherlings/internal/catalog"
	"github.com/abhisek/gopherlings/internal/config"
	"github.com/abhisek/gopherlings/internal/exercise"
	"github.com/abhisek/gopherlings/internal/progress"
	"github.com/abhisek/gopherlings/internal/runner"
	"github.com/abhisek/gopherlings/internal/store"
)

// App bundles everything a command needs to drive the learner's progress.
type App struct {
	Catalog  *catalog.Info
	Registry *exercise.Registry
	Tracker  *progress.Tracker
	Runner   *runner.Runner

	verifier *runner.Runner
	store    *store.Store
}

// Options configures Open.
type Options struct {
	Config config.Config
	Logger *zap.Logger
	// Output receives toolchain output of exercise runs. Nil discards it.
	Output io.Writer
}

// Open loads the catalog, selects the state backend, and restores progress.
func Open(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config

	info, err := catalog.Load(cfg.InfoFile)
	if err != nil {
		return nil, err
	}
	reg := exercise.NewRegistry(info.Descriptors())

	a := &App{Catalog: info, Registry: reg}

	dbPath := cfg.StateDB
	if dbPath == "" && cfg.UseDB {
		if dbPath, err = store.DefaultPath(); err != nil {
			return nil, fmt.Errorf("resolve state db: %w", err)
		}
	}

	var backend progress.Backend
	if dbPath != "" {
		if err := store.EnsureDir(dbPath); err != nil {
			return nil, fmt.Errorf("create state db dir: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.store = st
		backend = st.ProgressRepo().Backend(cfg.CurriculumKey())
	} else {
		backend = progress.NewFileBackend(cfg.StateFile)
	}

	runOpts := []runner.Option{
		runner.WithGoBin(cfg.GoBin),
		runner.WithDir(cfg.ExerciseRoot()),
		runner.WithLogger(logger),
	}
	// The verification pass reports one line per exercise, so its runner
	// only captures toolchain output.
	a.verifier = runner.New(runOpts...)
	if opts.Output != nil {
		runOpts = append(runOpts, runner.WithOutput(opts.Output))
	}
	a.Runner = runner.New(runOpts...)

	a.Tracker = progress.New(reg, progress.Options{
		Backend:        backend,
		Runner:         a.verifier,
		Logger:         logger,
		WelcomeMessage: info.WelcomeMessage,
		FinalMessage:   info.FinalMessage,
	})

	logger.Debug("app opened",
		zap.String("catalog", cfg.InfoFile),
		zap.Stringer("state", backend),
		zap.Int("exercises", reg.Len()))
	return a, nil
}

// Lookup returns the index of the named exercise, or the current exercise
// when name is empty.
func (a *App) Lookup(name string) (int, error) {
	if name == "" {
		return a.Tracker.CurrentIndex(), nil
	}
	ind, ok := a.Registry.Index(name)
	if !ok {
		return 0, fmt.Errorf("%w for %q", progress.ErrExerciseNotFound, name)
	}
	return ind, nil
}

// Close releases the state store, if any.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
