// Package server assembles the RecipeBox backend: storage, services and the
// HTTP and gRPC endpoints, and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/config"
	"github.com/dmitrijs2005/recipebox/internal/server/events"
	"github.com/dmitrijs2005/recipebox/internal/server/httpapi"
	"github.com/dmitrijs2005/recipebox/internal/server/images"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
	"github.com/dmitrijs2005/recipebox/internal/server/textgen"

	gs "github.com/dmitrijs2005/recipebox/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	repos         repomanager.RepositoryManager
	publisher     events.Publisher
	userService   *services.UserService
	recipeService *services.RecipeService
	uploader      *images.Presigner
}

// openRepositories picks the in-memory store when no DSN is configured.
func openRepositories(ctx context.Context, c *config.Config, log logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return repomanager.NewInMemoryRepositoryManager(c.SimulatedLatency, c.SeedData), nil
	}

	m, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	goose.SetLogger(logging.NewPrintfLogger(ctx, log.With("module", "migrations")))
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

func openPublisher(c *config.Config) (events.Publisher, error) {
	if c.AMQPURL == "" {
		return events.Nop{}, nil
	}
	return events.NewAMQPPublisher(c.AMQPURL, c.AMQPExchange)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	repos, err := openRepositories(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	gen, err := textgen.New(ctx, c.GenAIAPIKey, c.GenAIModel, logger)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	pub, err := openPublisher(c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("amqp init error: %w", err)
	}

	up := images.NewPresigner(images.Config{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})

	return &App{
		config:        c,
		logger:        logger,
		repos:         repos,
		publisher:     pub,
		userService:   services.NewUserService(repos, c, logger),
		recipeService: services.NewRecipeService(repos, gen, pub, logger),
		uploader:      up,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.recipeService, app.uploader)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.recipeService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails,
// then releases the store and the event publisher.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "Stopped, closing resources")
	return errors.Join(app.publisher.Close(), app.repos.Close())
}
