package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leighmacdonald/dota-tui/internal/assets"
	"github.com/leighmacdonald/dota-tui/internal/cache"
	"github.com/leighmacdonald/dota-tui/internal/config"
	"github.com/leighmacdonald/dota-tui/internal/conn"
	"github.com/leighmacdonald/dota-tui/internal/diagnostics"
	"github.com/leighmacdonald/dota-tui/internal/recorder"
	"github.com/leighmacdonald/dota-tui/internal/replay"
	"github.com/leighmacdonald/dota-tui/internal/store"
	"github.com/leighmacdonald/dota-tui/internal/ui"
	"github.com/leighmacdonald/dota-tui/internal/ui/pages"
	"github.com/leighmacdonald/dota-tui/internal/wakelock"
	"golang.org/x/sync/errgroup"
)

// App is the main application container. It owns the long running services and routes
// their updates into the ui.
type App struct {
	config config.Config
	// fileEndpoint is the endpoint last read from the config file. A session override from
	// the command line only gives way once the file names a different endpoint.
	fileEndpoint  string
	loader        *config.Loader
	configUpdates chan config.Config
	manager       *conn.Manager
	replay        *replay.Source
	recorder      *recorder.Recorder
	database      *sql.DB
	resolver      *assets.Resolver
	wakeLock      wakelock.Lock
}

// AppOpts are the command line choices that apply to a single session.
type AppOpts struct {
	// ReplayPath reads frames from a file instead of dialing the websocket.
	ReplayPath string
	// Endpoint overrides the configured endpoint without writing it to the config file.
	Endpoint string
}

// NewApp builds every service but starts nothing.
func NewApp(ctx context.Context, conf config.Config, loader *config.Loader, configUpdates chan config.Config,
	opts AppOpts,
) (*App, error) {
	fileEndpoint := conf.EndpointURL
	if opts.Endpoint != "" {
		conf.EndpointURL = opts.Endpoint
	}

	replayPath := opts.ReplayPath
	diag := diagnostics.New(slog.Default(), conf.Diagnostics.Areas, conf.Diagnostics.Filter)
	app := &App{
		config:        conf,
		fileEndpoint:  fileEndpoint,
		loader:        loader,
		configUpdates: configUpdates,
		wakeLock:      wakelock.New(conf.WakeLock),
	}

	var sink conn.Sink
	if conf.RecordEnabled && replayPath == "" {
		database, errDB := store.Open(ctx, config.Path(config.DefaultDBName), true)
		if errDB != nil {
			return nil, errDB
		}

		app.database = database
		app.recorder = recorder.New(store.New(database), diag)
		sink = app.recorder
	}

	manager, errManager := conn.New(conf.EndpointURL, conn.Opts{
		RetrySeconds: conf.ReconnectSeconds,
		Diagnostics:  diag,
		Sink:         sink,
	})
	if errManager != nil {
		app.Close()

		return nil, errManager
	}

	app.manager = manager

	if replayPath != "" {
		app.replay = replay.New(replayPath, replay.Opts{Diagnostics: diag})
		if err := app.replay.Open(); err != nil {
			app.Close()

			return nil, err
		}
	}

	assetCache, errCache := cache.New(config.PathCache(config.CacheDirName))
	if errCache != nil {
		app.Close()

		return nil, errCache
	}

	app.resolver = assets.New(&http.Client{Timeout: conf.HTTPTimeout()}, assetCache, assets.Opts{
		Hosts:         conf.AssetHosts,
		RetryInterval: conf.AssetRetryInterval(),
		Diagnostics:   diag,
	})

	return app, nil
}

// Run blocks until the ui exits. Every background service is stopped before returning.
func (app *App) Run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	// Replays have no connection to point elsewhere.
	var endpoint pages.EndpointSetter
	if app.replay == nil {
		endpoint = app.manager
	}

	userInterface := ui.New(ui.Opts{
		Context:      ctx,
		Config:       app.config,
		Loader:       app.loader,
		Endpoint:     endpoint,
		Resolver:     app.resolver,
		WakeLock:     app.wakeLock,
		Replay:       app.replay != nil,
		CachePath:    config.PathCache(config.CacheDirName),
		BuildVersion: BuildVersion,
		BuildDate:    BuildDate,
		BuildCommit:  BuildCommit,
	})

	if app.replay != nil {
		group.Go(func() error {
			app.replay.Start(ctx, app.manager)

			return nil
		})
	} else {
		app.loader.Watch()

		group.Go(func() error {
			app.manager.Start(ctx)

			return nil
		})
	}

	if app.recorder != nil {
		group.Go(func() error {
			app.recorder.Start(ctx)

			return nil
		})
	}

	group.Go(func() error {
		app.forward(ctx, userInterface)

		return nil
	})

	group.Go(func() error {
		// Leaving the ui shuts everything else down.
		defer cancel()

		if err := userInterface.Run(); err != nil && !errors.Is(ctx.Err(), context.Canceled) {
			return err
		}

		return nil
	})

	return group.Wait()
}

// forward pushes connection, snapshot and config changes into the ui.
func (app *App) forward(ctx context.Context, userInterface *ui.UI) {
	userInterface.SetState(app.manager.State())

	for {
		select {
		case <-ctx.Done():
			return
		case <-app.manager.StateChanges():
			userInterface.SetState(app.manager.State())
		case <-app.manager.SnapshotChanges():
			userInterface.SetSnapshot(app.manager.Snapshot())
		case conf := <-app.configUpdates:
			app.onConfigChange(conf)
			userInterface.SetConfig(app.config)
		}
	}
}

// onConfigChange follows endpoint edits made to the config file. Saves from the config page
// land here too; the manager ignores an endpoint it is already using.
func (app *App) onConfigChange(conf config.Config) {
	changed := conf.EndpointURL != app.fileEndpoint
	app.fileEndpoint = conf.EndpointURL

	if !changed || app.replay != nil {
		conf.EndpointURL = app.config.EndpointURL
		app.config = conf

		return
	}

	if err := app.manager.SetEndpoint(conf.EndpointURL); err != nil {
		slog.Error("Ignoring invalid endpoint from config", slog.String("error", err.Error()))
	}

	app.config = conf
}

func (app *App) Close() {
	if app.wakeLock != nil {
		if err := app.wakeLock.Release(); err != nil {
			slog.Error("Failed to release wake lock", slog.String("error", err.Error()))
		}
	}

	if app.replay != nil {
		if err := app.replay.Close(); err != nil {
			slog.Error("Failed to close replay", slog.String("error", err.Error()))
		}
	}

	if app.database != nil {
		if err := app.database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}
}
