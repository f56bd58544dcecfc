package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
)

func TestUserCRUD(t *testing.T, router *gin.Engine, adminToken string) {
	// An account to delete later.
	rr := doJSONWithAuth(router, "POST", "/api/v1/auth/register",
		dto.RegisterRequest{Username: "doomed", Password: "password123"}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created dto.RegisterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	t.Run("list users as admin", func(t *testing.T) {
		rr := doJSONWithAuth(router, "GET", "/api/v1/users", nil, adminToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.UserListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.GreaterOrEqual(t, resp.Total, int64(2))
		assert.NotEmpty(t, resp.Users)
	})

	t.Run("list users as non-admin forbidden", func(t *testing.T) {
		rr := doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
			Username: "doomed",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, rr.Code)
		var login dto.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))

		rr = doJSONWithAuth(router, "GET", "/api/v1/users", nil, login.Token)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("delete user", func(t *testing.T) {
		rr := doJSONWithAuth(router, "DELETE", "/api/v1/users/"+created.ID, nil, adminToken)
		assert.Equal(t, http.StatusNoContent, rr.Code)

		// Gone for real: the deleted account can no longer log in.
		rr = doJSON(router, "POST", "/api/v1/auth/login", dto.LoginRequest{
			Username: "doomed",
			Password: "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("delete unknown user", func(t *testing.T) {
		rr := doJSONWithAuth(router, "DELETE", "/api/v1/users/"+created.ID, nil, adminToken)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
