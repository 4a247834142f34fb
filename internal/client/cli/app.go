package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/config"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/services"
	"github.com/dmitrijs2005/moviecat/internal/client/session"
	"github.com/dmitrijs2005/moviecat/internal/client/views"
	"github.com/dmitrijs2005/moviecat/internal/filex"
	"github.com/dmitrijs2005/moviecat/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	store  *session.Store
	auth   services.AuthService
	movies services.MovieService
	notify views.Notifier
	navbar *views.Navbar

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.Mutex
	mode   Mode

	route   string
	current views.View
	history []string
}

// NewApp opens the local session database under cfg.DataDir and wires the
// gateway, services and views around it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DBPath(dir))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(db)
	api, err := client.NewHTTPClient(c.APIBaseURL, store.Token,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger.With("component", "gateway")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(c, logger, store, api, bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, store *session.Store, api client.Client, in *bufio.Reader, out io.Writer) *App {
	return &App{
		config: c,
		log:    logger,
		store:  store,
		auth:   services.NewAuthService(api, store, logger, c.TrustCachedIdentity),
		movies: services.NewMovieService(api, store),
		notify: views.WriterNotifier{W: out},
		navbar: views.NewNavbar(store),
		reader: in,
		out:    out,
	}
}

// Close releases the local database.
func (a *App) Close() error {
	if a.current != nil {
		a.current.Unmount()
	}
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run restores the session, shows the catalogue and blocks in the REPL until
// the user leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to moviecat (type 'help' for commands)")

	if _, err := a.auth.Bootstrap(ctx); err != nil {
		a.log.Error(ctx, "error restoring session", "error", err)
	}
	a.store.OnChange(func(s models.Session) {
		a.log.Debug(ctx, "session changed", "authenticated", s.Authenticated(), "admin", s.IsAdmin)
	})

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Navigate(ctx, views.RouteMovies)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the service every interval and keeps the
// mode shown in the prompt current. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Get().Authenticated()
}

func (a *App) getStatus() string {
	var parts []string
	s := a.store.Get()
	if s.Authenticated() {
		name := s.UserID
		if s.IsAdmin {
			name += " admin"
		}
		parts = append(parts, name)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}
