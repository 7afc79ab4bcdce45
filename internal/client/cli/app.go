package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/recipebox/internal/client/apiclient"
	"github.com/dmitrijs2005/recipebox/internal/client/config"
	"github.com/dmitrijs2005/recipebox/internal/client/session"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/netx"
	"github.com/dmitrijs2005/recipebox/internal/query"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

var uploadImage = netx.UploadToPresignedURL

// RecipeAPI is the part of the API client the commands use besides the
// session calls.
type RecipeAPI interface {
	Meta(ctx context.Context) (apiclient.Meta, error)
	ListRecipes(ctx context.Context, f query.Filter, limit int) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)
	CreateRecipe(ctx context.Context, token string, in models.RecipeInput) (models.Recipe, error)
	UpdateRecipe(ctx context.Context, token, id string, patch models.RecipePatch) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, token, id string) error
	MyRecipes(ctx context.Context, token string) ([]models.Recipe, error)
	SavedRecipes(ctx context.Context, token string) ([]models.Recipe, error)
	Describe(ctx context.Context, title string, ingredients []string) (string, error)
	PresignImage(ctx context.Context, token string) (apiclient.Upload, error)
}

type App struct {
	api     RecipeAPI
	session *session.Store
	backend session.Backend
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	// interactive is false when stdin is a pipe; the prompt is then omitted.
	interactive bool
}

func openBackend(ctx context.Context, c *config.Config, log logging.Logger) (session.Backend, error) {
	switch c.SessionBackend {
	case config.BackendSQLite:
		return session.OpenSQLite(ctx, c.SQLiteDSN, log)
	case config.BackendRedis:
		return session.OpenRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, c.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	backend, err := openBackend(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	api := apiclient.New(c.ServerURL, c.RequestTimeout)

	return &App{
		api:         api,
		session:     session.Open(ctx, api, backend, logger),
		backend:     backend,
		log:         logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u, ok := a.session.Current(); ok {
		return "(" + u.Name + ")"
	}
	return ""
}

// Run blocks in the REPL until exit or end of input, then closes the
// session backend.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.backend.Close(); err != nil {
			a.log.Error(ctx, "failed to close session store", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to RecipeBox (type 'help' for commands)")
	if u, ok := a.session.Current(); ok {
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", u.Name, u.Email)
	}

	status := a.getStatus
	if !a.interactive {
		status = nil
	}
	runREPL(ctx, a, status, a.reader, a.out)
}

// printError prints err and leaves the session alone. Login and register
// use it: their Unauthenticated means bad credentials, not a stale token.
func (a *App) printError(err error) error {
	fmt.Fprintf(a.out, "Error: %v\n", err)
	return err
}

// report prints err. An Unauthenticated error also drops any session the
// server no longer accepts.
func (a *App) report(ctx context.Context, err error) error {
	a.printError(err)
	if errors.Is(err, common.ErrorUnauthenticated) {
		a.session.Forget(ctx, err)
		fmt.Fprintln(a.out, "Please log in first.")
	}
	return err
}
