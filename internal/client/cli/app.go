package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/cloudchest/cloudchest-cli/internal/client/api"
	"github.com/cloudchest/cloudchest-cli/internal/client/config"
	"github.com/cloudchest/cloudchest-cli/internal/client/events"
	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories"
	"github.com/cloudchest/cloudchest-cli/internal/client/services"
	"github.com/cloudchest/cloudchest-cli/internal/client/uploads"
	"github.com/cloudchest/cloudchest-cli/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// RootFolderCode is the server-side code of the top-level folder.
const RootFolderCode = "root"

// App wires the CLI together: API client, services, upload registry and the
// local store. It also carries the browsing state of the session, which is
// the CLI's stand-in for the web client's current view.
type App struct {
	config  *config.Config
	api     *api.Client
	auth    *services.AuthService
	files   *services.FileService
	folders *services.FolderService
	uploads *uploads.Registry
	bus     *events.Bus
	repos   *repositories.Repositories
	log     logging.Logger

	reader *bufio.Reader

	Mode Mode

	// Browsing state: the folder being viewed and the entries the last
	// listing showed, so commands can refer to them by index.
	currentFolder string
	crumbs        []models.FolderHierarchy
	lastFolders   []models.Folder
	lastFiles     []models.File

	// stale is set from bus handlers, which run on upload goroutines,
	// and read by the REPL loop.
	stale atomic.Bool
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := repositories.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.New(c.BaseURL, c.RequestTimeout, logger)
	bus := events.NewBus(logger)

	app := &App{
		config:        c,
		api:           apiClient,
		auth:          services.NewAuthService(apiClient, repos.Metadata, logger),
		files:         services.NewFileService(apiClient, bus, repos.Files, logger),
		folders:       services.NewFolderService(apiClient, bus, repos.Folders, logger),
		uploads:       uploads.NewRegistry(apiClient, bus, logger),
		bus:           bus,
		repos:         repos,
		log:           logger,
		reader:        bufio.NewReader(os.Stdin),
		Mode:          ModeOnline,
		currentFolder: RootFolderCode,
	}
	app.subscribeRefresh()
	return app, nil
}

// subscribeRefresh marks the current listing stale whenever the library
// changes, so the next prompt re-renders it. This is the CLI counterpart of
// the web views re-fetching on bus events.
func (a *App) subscribeRefresh() {
	kinds := []events.Kind{
		events.FileAdded, events.FileUpdated, events.FileTrashed, events.FileDeleted,
		events.FolderAdded, events.FolderUpdated, events.FolderTrashed, events.FolderDeleted,
	}
	for _, k := range kinds {
		a.bus.Subscribe(k, func(e events.Event) {
			a.stale.Store(true)
			if e.Kind == events.FileAdded && e.File != nil {
				printlnFn("Uploaded:", e.File.FileName)
			}
		})
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.LoggedIn()
}

// Run starts the REPL and blocks until the user exits or stdin closes.
// In-flight uploads are drained before returning.
func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()
	defer a.uploads.Wait()
	a.Root(ctx)
}

// StartOnlineStatusWatcher probes server reachability on the given interval
// and flips Mode accordingly. In offline mode browsing commands fall back to
// the local cache.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
