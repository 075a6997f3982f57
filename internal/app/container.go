package app

import (
	"context"

	"github.com/doeshing/gensuite/internal/application/governor"
	"github.com/doeshing/gensuite/internal/application/session"
	"github.com/doeshing/gensuite/internal/domain"
	"github.com/doeshing/gensuite/internal/infrastructure/config"
	"github.com/doeshing/gensuite/internal/infrastructure/engine"
	"github.com/doeshing/gensuite/internal/infrastructure/history"
	"github.com/doeshing/gensuite/internal/pkg/logger"
	"github.com/doeshing/gensuite/internal/ports"
)

// Container wires application services with infrastructure adapters.
// The console, cap prompter and exporter are attached by the CLI layer
// after construction.
type Container struct {
	Session      *session.Service
	Governor     *governor.Service
	Engine       *engine.Local
	ConfigLoader *config.FileLoader
	History      ports.HistoryRepository
	Logger       ports.Logger
	Config       domain.Config
}

// BuildContainer constructs the dependency graph and verifies the engine
// binary is reachable. A missing engine is fatal before any flow runs.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	runner := engine.NewLocal(cfg.Engine.Binary)
	if _, err := runner.Locate(); err != nil {
		return nil, err
	}

	var historyStore ports.HistoryRepository
	if cfg.History.Enabled {
		historyStore = history.NewSQLiteStore()
	}

	gov := &governor.Service{
		Engine: runner,
		Logger: log,
	}

	sess := &session.Service{
		Config:   cfgLoader,
		Saver:    cfgLoader,
		Engine:   runner,
		Governor: gov,
		History:  historyStore,
		Logger:   log,
	}

	return &Container{
		Session:      sess,
		Governor:     gov,
		Engine:       runner,
		ConfigLoader: cfgLoader,
		History:      historyStore,
		Logger:       log,
		Config:       cfg,
	}, nil
}
