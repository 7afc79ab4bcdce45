package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
	"github.com/dmitrijs2005/recipebox/internal/server/auth"
	"github.com/dmitrijs2005/recipebox/internal/server/config"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/users"
)

// Session is what register and login hand back to the client.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// UserService provides identity operations. No password is modelled: an
// email is enough to log in.
type UserService struct {
	users                       users.Repository
	recipes                     recipes.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	log                         logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		users:                       m.Users(),
		recipes:                     m.Recipes(),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		log:                         log.With("module", "users"),
	}
}

// NormalizeEmail trims and lowercases an address so lookups ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) issue(u models.User) (Session, error) {
	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return Session{}, fmt.Errorf("error generating token: %w", err)
	}
	return Session{User: u, Token: token}, nil
}

// Register fails with common.ErrorConflict when the email is taken.
func (s *UserService) Register(ctx context.Context, name, email string) (Session, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return Session{}, validation("name is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return Session{}, validation(fmt.Sprintf("invalid email %q", email))
	}

	u, err := s.users.Create(ctx, models.User{Name: name, Email: email})
	if err != nil {
		return Session{}, fmt.Errorf("error creating user: %w", err)
	}
	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return s.issue(u)
}

// Login fails with common.ErrorUnauthenticated for an unknown email.
func (s *UserService) Login(ctx context.Context, email string) (Session, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Session{}, common.ErrorUnauthenticated
		}
		return Session{}, fmt.Errorf("error getting user: %w", err)
	}
	return s.issue(u)
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (models.User, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", common.ErrorUnauthenticated, err)
	}
	return s.Me(ctx, id)
}

// Me fails with common.ErrorUnauthenticated when the user is gone.
func (s *UserService) Me(ctx context.Context, userID string) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.User{}, common.ErrorUnauthenticated
		}
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.User, error) {
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return models.User{}, validation("name must not be empty")
		}
		patch.Name = &n
	}
	if patch.ProfilePhoto != nil {
		p := strings.TrimSpace(*patch.ProfilePhoto)
		patch.ProfilePhoto = &p
	}

	u, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}
	return u, nil
}

// SaveRecipe fails with common.ErrorNotFound for an unknown recipe.
// Saving twice is a no-op.
func (s *UserService) SaveRecipe(ctx context.Context, userID, recipeID string) (models.User, error) {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return models.User{}, fmt.Errorf("error getting recipe: %w", err)
	}
	u, err := s.users.AddSavedRecipe(ctx, userID, recipeID)
	if err != nil {
		return models.User{}, fmt.Errorf("error saving recipe: %w", err)
	}
	return u, nil
}

// UnsaveRecipe also removes stale ids; removing an absent id is a no-op.
func (s *UserService) UnsaveRecipe(ctx context.Context, userID, recipeID string) (models.User, error) {
	u, err := s.users.RemoveSavedRecipe(ctx, userID, recipeID)
	if err != nil {
		return models.User{}, fmt.Errorf("error removing saved recipe: %w", err)
	}
	return u, nil
}
