package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/middleware"
	"pawmart-backend/internal/models"
)

// AuthHandler serves the signed-in user's own profile.
type AuthHandler struct {
	userService core.UserService
	errorMapper
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us core.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: us, errorMapper: errorMapper{logger: logger}}
}

// SyncProfile handles POST /users. Clients call it after every sign-in so a
// user record exists; the response is 201 when the record was just created.
func (h *AuthHandler) SyncProfile(c *gin.Context) {
	var req models.UpsertProfileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	user, created, err := h.userService.Upsert(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.respond(c, "sync profile", err)
		return
	}
	if created {
		h.logger.Info("User profile created", zap.String("uid", user.UID))
		c.JSON(http.StatusCreated, user)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetProfile handles GET /user-profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.Profile(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.respond(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
