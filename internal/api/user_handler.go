package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/middleware"
	"pawmart-backend/internal/models"
)

// UserHandler handles the admin user-management endpoints.
type UserHandler struct {
	userService core.UserService
	errorMapper
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, errorMapper: errorMapper{logger: logger}}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.respond(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /admin/users/:uid
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req models.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userService.AdminUpdate(c.Request.Context(), middleware.GetPrincipal(c), c.Param("uid"), req)
	if err != nil {
		h.respond(c, "admin update user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AssignRole handles PUT /admin/users/:uid/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userService.AssignRole(c.Request.Context(), middleware.GetPrincipal(c), c.Param("uid"), req.Role)
	if err != nil {
		h.respond(c, "assign role", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
