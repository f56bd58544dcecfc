package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wardenhq/warden-server/internal/api/http/dto"
	"github.com/wardenhq/warden-server/internal/store"
	"github.com/wardenhq/warden-server/internal/users"
)

type UsersHandler struct {
	service *users.Service
}

func NewUsersHandler(service *users.Service) *UsersHandler {
	return &UsersHandler{service: service}
}

// List returns operator accounts, paginated. Admin only.
// GET /users?limit=&offset=
func (h *UsersHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, total, err := h.service.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := dto.UserListResponse{Total: total, Users: make([]dto.UserResponse, len(accounts))}
	for i, u := range accounts {
		resp.Users[i] = dto.UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes an operator account. Admin only; self-deletion is refused.
// DELETE /users/:user_id
func (h *UsersHandler) Delete(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete own account"})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("Failed to delete user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	slog.Info("Operator account deleted", "user_id", userID, "by", c.GetString("username"))
	c.Status(http.StatusNoContent)
}
