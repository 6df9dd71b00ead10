package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/config"
	"github.com/dmitrijs2005/docdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docdesk/internal/client/router"
	"github.com/dmitrijs2005/docdesk/internal/client/session"
	"github.com/dmitrijs2005/docdesk/internal/client/storage"
	"github.com/dmitrijs2005/docdesk/internal/client/views"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config  *config.Config
	log     logging.Logger
	api     client.Client
	session *session.Store
	tokens  session.TokenStore
	db      *sql.DB

	docs    *views.Documents
	search  *views.Search
	profile *views.Profile
	dash    *views.Dashboard

	reader *bufio.Reader
	out    io.Writer

	mu    sync.RWMutex
	mode  Mode
	route router.Decision
}

// NewApp opens the local state file and wires the REST client, the session
// and the views. Close releases the state file.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StatePath, "error", err)
		return nil, err
	}

	api, err := client.New(c.ServerURL, c.APIPrefix,
		client.WithHTTPTimeout(c.RequestTimeout),
		client.WithLogger(log),
		client.WithDebugLogging(c.Debug),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := newApp(c, api, metadata.NewTokenStore(db), log, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, api client.Client, tokens session.TokenStore, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Discard()
	}
	sess := session.NewStore(api, tokens, log)
	return &App{
		config:  c,
		log:     log.With("component", "shell"),
		api:     api,
		session: sess,
		tokens:  tokens,
		docs:    views.NewDocuments(api, log),
		search:  views.NewSearch(api, log),
		profile: views.NewProfile(api, sess, log),
		dash:    views.NewDashboard(api),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Start resolves the persisted session. Views are not rendered before it
// returns.
func (a *App) Start(ctx context.Context) error {
	return a.session.Initialize(ctx)
}

// Run starts the session, shows the landing view and blocks in the shell
// until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		return err
	}

	a.info("Welcome to docdesk (type 'help' for commands)")
	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	a.Report(ctx, a.Navigate(ctx, string(router.RouteHome)))
	runREPL(ctx, a, a.reader)
	return nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// shell between online and offline mode until ctx is done.
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
	return a.session.State() == session.Authenticated
}

func (a *App) current() router.Decision {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.route
}

func (a *App) setRoute(d router.Decision) {
	a.mu.Lock()
	a.route = d
	a.mu.Unlock()
}

// prompt renders as "user@route (mode)> ".
func (a *App) prompt() string {
	who := "guest"
	if u, ok := a.session.User(); ok {
		who = u.Username
	}
	where := "-"
	if d := a.current(); d.Action == router.Render {
		where = d.Path()
	}
	s := fmt.Sprintf("%s@%s", who, where)
	if m := a.Mode(); m != "" {
		s += fmt.Sprintf(" (%s)", m)
	}
	return promptColor.Sprint(s) + "> "
}
