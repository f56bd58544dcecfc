// Package users manages operator accounts for the dashboard and API.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardenhq/warden-server/internal/store"
)

// Role values stored on operator accounts.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserInfo is the external view of an account; the password hash never
// leaves this package.
type UserInfo struct {
	ID        string
	Username  string
	Role      string
	CreatedAt time.Time
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]UserInfo, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	accounts, total, err := s.store.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	result := make([]UserInfo, len(accounts))
	for i, u := range accounts {
		result[i] = UserInfo{
			ID:        u.ID.String(),
			Username:  u.Username,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}
	return result, total, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return store.ErrUserNotFound
	}
	return s.store.DeleteUser(ctx, parsed)
}
