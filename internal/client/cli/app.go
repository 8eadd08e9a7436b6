package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wbdash/wbdash/internal/client/client"
	"github.com/wbdash/wbdash/internal/client/config"
	"github.com/wbdash/wbdash/internal/client/datefilter"
	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/client/router"
	"github.com/wbdash/wbdash/internal/client/selection"
	"github.com/wbdash/wbdash/internal/client/services"
	"github.com/wbdash/wbdash/internal/client/session"
	"github.com/wbdash/wbdash/internal/cryptox"
	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/filex"
	"github.com/wbdash/wbdash/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const (
	dbFile       = "wbdash.db"
	identityFile = "identity.age"
	chartWidth   = 40
	pingTimeout  = 3 * time.Second
)

type authAPI interface {
	Login(ctx context.Context, nickname, password string) (models.User, error)
	Register(ctx context.Context, in client.RegisterInput) (models.User, error)
	ReloadProfile(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
}

type accountAPI interface {
	List(ctx context.Context) ([]models.LinkedAccount, error)
	Create(ctx context.Context, in models.AccountInput) (models.LinkedAccount, error)
	Share(ctx context.Context, lkID, userID int64) (string, error)
	Users(ctx context.Context, lkID int64) ([]models.Grantee, error)
	Revoke(ctx context.Context, lkID, userID int64) (string, error)
}

type sessionView interface {
	User() (models.User, bool)
	Authenticated() bool
	Selection() *selection.Set
}

type statsLoader interface {
	Load(ctx context.Context, r daterange.Range) (services.State[services.PeriodStats], error)
}

type productsLoader interface {
	Load(ctx context.Context, r daterange.Range) (services.State[[]models.Product], error)
}

type chartLoader interface {
	Load(ctx context.Context, r daterange.Range) (services.State[models.OrdersChart], error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// App is the interactive dashboard client.
type App struct {
	log      logging.Logger
	sess     sessionView
	auth     authAPI
	accounts accountAPI
	stats    statsLoader
	products productsLoader
	orders   chartLoader
	filter   *datefilter.Filter
	probe    pinger
	reader   *bufio.Reader
	out      io.Writer
	closers  []io.Closer

	mu           sync.Mutex
	mode         Mode
	page         router.Page
	path         string
	rangeChanged bool
}

// NewApp opens the local store under cfg.DataDir, restores any saved
// session and wires the API services.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, filepath.Join(dir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	identity, err := cryptox.LoadOrCreateIdentity(filepath.Join(dir, identityFile))
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	sess := session.New(repos.Metadata, cryptox.NewAgeSealer(identity),
		session.WithMaxAge(cfg.SessionMaxAge), session.WithLogger(log))
	if _, err := sess.Hydrate(ctx); err != nil {
		_ = repos.Close()
		return nil, err
	}

	probe, err := client.NewHealthProbe(cfg.HealthAddr)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, sess)
	fetcher := client.NewScopedFetcher(cfg.ServerURL, cfg.RequestTimeout, sess, sess)

	a := &App{
		log:      log,
		sess:     sess,
		auth:     services.NewAuthService(api, sess, log),
		accounts: services.NewAccountService(api, sess),
		stats:    services.NewPeriodStatsView(fetcher, log),
		products: services.NewProductsView(fetcher),
		orders:   services.NewOrdersChartView(fetcher),
		probe:    probe,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []io.Closer{probe, repos},
	}
	a.filter = datefilter.New(time.Now, a.onRangeChange)
	return a, nil
}

// Run shows the landing page and blocks in the REPL until the user exits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context, onlineCheckInterval time.Duration) {
	defer a.Close()

	fmt.Fprintln(a.out, "WB Dashboard (введите help для списка команд)")
	_ = a.Go(ctx, router.DashboardPath)

	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.sess.Authenticated()
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) currentPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

func (a *App) currentPage() router.Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.page
}

func (a *App) getStatus() string {
	s := a.currentPath()
	if u, ok := a.sess.User(); ok {
		s += " " + u.Nickname
	}
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return s
}

// StartOnlineStatusWatcher probes the server every interval and flips the
// connectivity mode. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.probe.Ping(pctx)
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
