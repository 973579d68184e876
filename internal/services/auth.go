// Package services holds the business logic between HTTP handlers and
// the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
	"github.com/spiritsvault/spirits-vault-backend/pkg/utils"
)

var (
	// ErrMissingFields is returned when a required registration field is absent.
	ErrMissingFields = errors.New("username, email and password are required")
	// ErrInvalidEmail is returned when the email does not match local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrEmailInUse is returned when another user owns the email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrUsernameTaken is returned when another user owns the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, so login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore defines the persistence operations required by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the sanitized user view and a freshly issued token.
type AuthResponse struct {
	User  models.UserResponse `json:"user"`
	Token string              `json:"token"`
}

// AuthService orchestrates registration and login.
type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register validates the input, checks uniqueness, hashes the password,
// persists the user and issues a token. The uniqueness lookups are a fast
// path only; the store's unique indexes are the real guarantee, and their
// violations surface as the same conflict errors.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if !utils.ValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	email := utils.NormalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	// Default to a generated avatar keyed by a fresh random id
	if req.ProfilePicture == "" {
		req.ProfilePicture = fmt.Sprintf("https://avatars.dicebear.com/api/avataaars/%s.svg", uuid.NewString())
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       req.Username,
		Email:          email,
		Password:       hashed,
		Name:           req.Name,
		Phone:          req.Phone,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailInUse
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		default:
			return nil, err
		}
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{User: models.NewUserResponse(user), Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{User: models.NewUserResponse(user), Token: token}, nil
}
