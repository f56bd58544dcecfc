package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/auth"
)

// AdminLogin logs in with the bootstrap admin credentials and returns the
// token for use in the other scenarios.
func AdminLogin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	rr := doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthFlow(t *testing.T, router *gin.Engine, jwtSecret, adminToken string) {
	t.Run("register as admin", func(t *testing.T) {
		body := dto.RegisterRequest{Username: "operator1", Password: "password123"}
		rr := doJSONWithAuth(router, "POST", "/api/v1/auth/register", body, adminToken)
		assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var resp dto.RegisterResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "operator1", resp.Username)
		assert.Equal(t, "user", resp.Role)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		body := dto.RegisterRequest{Username: "operator1", Password: "password123"}
		rr := doJSONWithAuth(router, "POST", "/api/v1/auth/register", body, adminToken)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("password too short", func(t *testing.T) {
		body := dto.RegisterRequest{Username: "shortpw", Password: "short"}
		rr := doJSONWithAuth(router, "POST", "/api/v1/auth/register", body, adminToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("register without token", func(t *testing.T) {
		body := dto.RegisterRequest{Username: "sneaky", Password: "password123"}
		rr := doJSON(router, "POST", "/api/v1/auth/register", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("login as new operator", func(t *testing.T) {
		rr := doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
			Username: "operator1",
			Password: "password123",
		})
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		claims, err := auth.ValidateToken(jwtSecret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "operator1", claims.Username)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("register as non-admin forbidden", func(t *testing.T) {
		rr := doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
			Username: "operator1",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, rr.Code)
		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		body := dto.RegisterRequest{Username: "operator2", Password: "password123"}
		rr = doJSONWithAuth(router, "POST", "/api/v1/auth/register", body, resp.Token)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
			Username: "operator1",
			Password: "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("nonexistent user", func(t *testing.T) {
		rr := doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
			Username: "nouser",
			Password: "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func doJSONWithAuth(router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
