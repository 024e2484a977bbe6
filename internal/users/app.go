package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/models"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// PasswordHasher defines what the app layer needs from the auth service
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

// App handles users business logic
type App struct {
	repo   UsersRepository
	hasher PasswordHasher
}

// NewApp creates a new users App
func NewApp(repo UsersRepository, hasher PasswordHasher) *App {
	return &App{repo: repo, hasher: hasher}
}

// Register creates a new account with a hashed password
func (a *App) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := a.repo.GetUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.repo.CreateUser(ctx, CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []string{models.RoleUser},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("user registered")
	return user, nil
}

// Authenticate verifies email/password and returns the matching user
func (a *App) Authenticate(ctx context.Context, req LoginRequest) (*models.User, error) {
	user, err := a.repo.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !a.hasher.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return a.repo.GetUser(ctx, id)
}

// UpdateProfile applies a partial profile update
func (a *App) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	if req.Level != nil && *req.Level < 1 {
		return nil, fmt.Errorf("validation failed: level must be at least 1")
	}
	return a.repo.UpdateUser(ctx, id, req)
}

// DeleteUser removes an account
func (a *App) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return a.repo.DeleteUser(ctx, id)
}

func validateRegisterRequest(req RegisterRequest) error {
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return fmt.Errorf("email format is invalid")
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
