package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/internal/users"
)

var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", users.MinPasswordLength)
)

type RegisterResult struct {
	ID       string
	Username string
	Role     string
}

// Service issues and validates operator credentials. Token validation lives
// in token.go; this handles the account side.
type Service struct {
	store  store.Store
	config Config
}

func NewService(st store.Store, config Config) *Service {
	return &Service{store: st, config: config}
}

func (s *Service) Register(ctx context.Context, username, password, role string) (RegisterResult, error) {
	if len(password) < users.MinPasswordLength {
		return RegisterResult{}, ErrPasswordTooShort
	}
	if role != users.RoleAdmin {
		role = users.RoleUser
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := &store.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return RegisterResult{}, ErrUsernameExists
		}
		return RegisterResult{}, fmt.Errorf("create user: %w", err)
	}

	return RegisterResult{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("query user: %w", err)
	}

	if !users.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.config, user.ID.String(), user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account on first start.
// A no-op once any account with that username exists.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("check admin account: %w", err)
	}

	if _, err := s.Register(ctx, username, password, users.RoleAdmin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	slog.Info("Created bootstrap admin account", "username", username)
	return nil
}
