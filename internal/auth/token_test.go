package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := Config{Secret: "test-secret", Issuer: "warden"}

	token, err := GenerateToken(cfg, "user-1", "alice", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := Config{Secret: "right-secret"}
	token, err := GenerateToken(cfg, "user-1", "alice", "viewer")
	require.NoError(t, err)

	_, err = ValidateToken("wrong-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := Config{Secret: "test-secret", Lifetime: -time.Hour}
	token, err := GenerateToken(cfg, "user-1", "alice", "viewer")
	require.NoError(t, err)

	_, err = ValidateToken("test-secret", token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidateToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestVerifier(t *testing.T) {
	cfg := Config{Secret: "test-secret"}
	token, err := GenerateToken(cfg, "user-1", "alice", "viewer")
	require.NoError(t, err)

	v := Verifier{Secret: "test-secret"}
	assert.NoError(t, v.Verify(token))
	assert.Error(t, v.Verify("bogus"))
}
