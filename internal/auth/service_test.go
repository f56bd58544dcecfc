package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/internal/users"
)

// userStore embeds the Store interface and backs only the account methods.
type userStore struct {
	store.Store

	accounts map[string]*store.User
}

func newUserStore() *userStore {
	return &userStore{accounts: make(map[string]*store.User)}
}

func (s *userStore) CreateUser(_ context.Context, u *store.User) error {
	if _, exists := s.accounts[u.Username]; exists {
		return store.ErrUsernameTaken
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	s.accounts[u.Username] = u
	return nil
}

func (s *userStore) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	u, ok := s.accounts[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func testConfig() Config {
	return Config{Secret: "test-secret", Issuer: "warden-test", Lifetime: time.Hour}
}

func TestRegisterAndLogin(t *testing.T) {
	st := newUserStore()
	svc := NewService(st, testConfig())

	result, err := svc.Register(context.Background(), "alice", "longenough", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, users.RoleUser, result.Role)
	assert.NotEmpty(t, result.ID)

	// The stored hash is never the plaintext.
	assert.NotEqual(t, "longenough", st.accounts["alice"].PasswordHash)

	token, err := svc.Login(context.Background(), "alice", "longenough")
	require.NoError(t, err)

	claims, err := ValidateToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, users.RoleUser, claims.Role)
	assert.Equal(t, result.ID, claims.UserID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(newUserStore(), testConfig())

	_, err := svc.Register(context.Background(), "alice", "longenough", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "otherpassword", "")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(newUserStore(), testConfig())

	_, err := svc.Register(context.Background(), "alice", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterUnknownRoleDowngraded(t *testing.T) {
	svc := NewService(newUserStore(), testConfig())

	result, err := svc.Register(context.Background(), "bob", "longenough", "superuser")
	require.NoError(t, err)
	assert.Equal(t, users.RoleUser, result.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newUserStore(), testConfig())

	_, err := svc.Register(context.Background(), "alice", "longenough", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewService(newUserStore(), testConfig())

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	st := newUserStore()
	svc := NewService(st, testConfig())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", "bootstrap-pw"))
	assert.Equal(t, users.RoleAdmin, st.accounts["admin"].Role)

	// Idempotent: a second call leaves the account alone.
	created := st.accounts["admin"]
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", "different-pw"))
	assert.Same(t, created, st.accounts["admin"])
}

func TestEnsureDefaultAdminDisabledWhenUnset(t *testing.T) {
	st := newUserStore()
	svc := NewService(st, testConfig())

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), "admin", ""))
	assert.Empty(t, st.accounts)
}
