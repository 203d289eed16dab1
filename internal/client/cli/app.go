package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/avesnin/inkpress-cli/internal/client/api"
	"github.com/avesnin/inkpress-cli/internal/client/config"
	"github.com/avesnin/inkpress-cli/internal/client/guard"
	"github.com/avesnin/inkpress-cli/internal/client/session"
	"github.com/avesnin/inkpress-cli/internal/client/store"
	"github.com/avesnin/inkpress-cli/internal/logging"
)

// App wires the client together: config → credential store → API client →
// session manager → route guard, plus the interactive reader the command
// handlers share.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	store    store.Repository
	api      *api.Client
	sessions *session.Manager
	guard    *guard.Guard
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing credentials database", "err", err)
		return nil, err
	}

	repo := store.NewSQLiteRepository(db, logger)

	// Authenticated calls read the token from the store at call time, so a
	// token rotated or cleared elsewhere is picked up on the next request.
	tokens := func(ctx context.Context) (string, error) {
		creds, err := repo.Load(ctx)
		if err != nil {
			return "", err
		}
		return creds.Token, nil
	}

	apiClient := api.NewClient(cfg.APIBaseURL, tokens, logger, cfg.RequestTimeout)
	sessions := session.NewManager(ctx, repo, apiClient, logger)

	return &App{
		config:   cfg,
		log:      logger,
		db:       db,
		store:    repo,
		api:      apiClient,
		sessions: sessions,
		guard:    guard.New(sessions),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().Authenticated()
}

func (a *App) status() string {
	s := a.sessions.Current()
	if s.User == nil {
		return "anonymous"
	}
	return s.User.Username
}

// authorize runs the route guard for a protected command. On denial it
// tells the user how to proceed; the guard remembers the route so a
// successful login comes back here.
func (a *App) authorize(route guard.Route) bool {
	d := a.guard.Check(route)
	if d.Allowed {
		return true
	}
	printlnFn("You need to sign in first (command: login).")
	return false
}

// dispatchRoute maps a resume target back onto its command handler.
func (a *App) dispatchRoute(ctx context.Context, route guard.Route) {
	switch route {
	case guard.RouteWrite:
		_ = a.Write(ctx)
	case guard.RouteEditPost:
		_ = a.Edit(ctx)
	case guard.RouteDeletePost:
		_ = a.Delete(ctx)
	case guard.RouteProfile:
		_ = a.Profile(ctx)
	case guard.RouteEditProfile:
		_ = a.EditProfile(ctx)
	}
}
