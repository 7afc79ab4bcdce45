// Package httpapi exposes the RecipeBox services as a JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/query"
	"github.com/dmitrijs2005/recipebox/internal/server/images"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, name, email string) (services.Session, error)
	Login(ctx context.Context, email string) (services.Session, error)
	Authenticate(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.User, error)
	SaveRecipe(ctx context.Context, userID, recipeID string) (models.User, error)
	UnsaveRecipe(ctx context.Context, userID, recipeID string) (models.User, error)
}

type RecipeService interface {
	List(ctx context.Context, f query.Filter, limit int) ([]models.Recipe, error)
	Get(ctx context.Context, id string) (models.Recipe, error)
	Create(ctx context.Context, authorID string, in models.RecipeInput) (models.Recipe, error)
	Update(ctx context.Context, actorID, id string, patch models.RecipePatch) (models.Recipe, error)
	Delete(ctx context.Context, actorID, id string) error
	ByAuthor(ctx context.Context, authorID string) ([]models.Recipe, error)
	SavedFor(ctx context.Context, userID string) ([]models.Recipe, error)
	Describe(ctx context.Context, title string, ingredients []string) (string, error)
}

type Uploader interface {
	PresignUpload(ctx context.Context) (images.Upload, error)
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   UserService
	recipes RecipeService
	uploads Uploader
	engine  *gin.Engine
}

func NewHTTPServer(a string, l logging.Logger, us UserService, rs RecipeService, up Uploader) *HTTPServer {
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		recipes: rs,
		uploads: up,
	}
	s.engine = s.routes()
	return s
}

func (s *HTTPServer) Handler() http.Handler { return s.engine }

// Run serves until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
