package app

import (
	"context"

	"golang.org/x/exp/slog"

	"folio/internal/config"
	"folio/internal/domain/collection"
	"folio/internal/domain/profile"
	"folio/internal/domain/record"
	"folio/internal/infrastructure/storage"
	"folio/internal/infrastructure/storage/mirror"
	"folio/internal/infrastructure/storage/sqlite"
	"folio/internal/render"
)

// App wires the stores, the collection managers and the profile service.
// The store is an explicit dependency handed to each manager, never a
// package-level global.
type App struct {
	config *config.Config
	log    *slog.Logger

	Store    record.Store
	Journal  *collection.Manager
	Projects *collection.Manager
	Profile  *profile.Service
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	structured := sqlite.New(cfg.DBPath, log)
	mirrorStore := mirror.New(cfg.MirrorPath, log)
	store := storage.NewDualStore(structured, mirrorStore, log)

	if err := store.Open(ctx); err != nil {
		// Non-fatal: the mirror snapshot keeps reads and writes working.
		log.Warn("structured store unavailable, running on mirror only", "error", err)
	}

	journal := collection.NewManager(collection.Config{
		Collection: record.Journals,
		Bounds:     record.JournalBounds(),
		Template:   render.Journal(),
	}, store, log)

	projects := collection.NewManager(collection.Config{
		Collection:      record.Projects,
		Bounds:          record.ProjectBounds(),
		Template:        render.Project(),
		WithAttachments: true,
	}, store, log)

	return &App{
		config:   cfg,
		log:      log,
		Store:    store,
		Journal:  journal,
		Projects: projects,
		Profile:  profile.NewService(mirrorStore, log),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
