package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/config"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
)

// Expected authentication failures. Both a missing user and a wrong
// password surface as ErrInvalidCredentials so callers cannot tell which
// one occurred.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
)

// AuthResult bundles the outcome of a successful login or registration.
type AuthResult struct {
	Username  string
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates a username/password pair and issues a fresh token
// carrying the account's current role.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.Generate(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Username: user.Username, Role: user.Role, Token: token, ExpiresAt: exp}, nil
}

// Register creates a new account and issues its first token. Duplicate
// detection rides on the store's unique username constraint, so two
// concurrent registrations for one name yield exactly one success.
func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) (*AuthResult, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	token, exp, err := s.tokenMgr.Generate(user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Username: user.Username, Role: user.Role, Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
