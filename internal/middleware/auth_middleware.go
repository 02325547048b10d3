package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawmart-backend/internal/core"
	"pawmart-backend/internal/models"
)

// Context keys set by the auth middleware. UserIDKey carries the subject id
// alone so loggers can read it without touching the rest of the principal.
const (
	PrincipalKey = "principal"
	UserIDKey    = "userID"
)

// ErrorResponse mirrors api.ErrorResponse; it is defined here to avoid an
// import cycle with internal/api.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if verifier == nil {
		logger.Fatal("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// ResolvePrincipal turns an Authorization header into a verified principal.
// Missing, malformed and rejected credentials yield core.ErrUnauthenticated;
// a provider that cannot be reached yields core.ErrUnavailable.
func (m *AuthMiddleware) ResolvePrincipal(ctx context.Context, header string) (*models.Principal, error) {
	if header == "" {
		return nil, core.ErrUnauthenticated
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, core.ErrUnauthenticated
	}

	token, err := m.verifier.VerifyIDTokenAndCheckRevoked(ctx, parts[1])
	if err != nil {
		if providerUnavailable(err) {
			m.logger.Warn("Identity provider unavailable", zap.Error(err))
			return nil, core.ErrUnavailable
		}
		m.logger.Debug("ID token rejected", zap.String("reason", rejectionReason(err)))
		return nil, core.ErrUnauthenticated
	}

	principal := &models.Principal{
		SubjectID: token.UID,
		Claims:    token.Claims,
	}
	if email, ok := token.Claims["email"].(string); ok {
		principal.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		principal.Name = name
	}
	return principal, nil
}

// RequireAuth aborts with 401 or 503 unless the request carries a valid token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.ResolvePrincipal(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, core.ErrUnavailable) {
				abortUnavailable(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Invalid or missing authentication token",
				Code:  "unauthenticated",
			})
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth attaches a principal when the request carries a valid token
// and otherwise continues anonymously.
//
// A missing, malformed or rejected token is the same as no token. A provider
// outage is not: the caller presented a credential that may well be valid,
// and serving the anonymous view would hide resources it owns (a pending
// listing reads as 404). The request is aborted with a retryable 503 instead.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			principal, err := m.ResolvePrincipal(c.Request.Context(), header)
			switch {
			case err == nil:
				setPrincipal(c, principal)
			case errors.Is(err, core.ErrUnavailable):
				abortUnavailable(c)
				return
			}
		}
		c.Next()
	}
}

func abortUnavailable(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
		Error: "Authentication service temporarily unavailable",
		Code:  "unavailable",
	})
}

func setPrincipal(c *gin.Context, principal *models.Principal) {
	c.Set(PrincipalKey, principal)
	c.Set(UserIDKey, principal.SubjectID)
}

// GetPrincipal returns the principal attached to c, or nil.
func GetPrincipal(c *gin.Context) *models.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	principal, _ := v.(*models.Principal)
	return principal
}

func providerUnavailable(err error) bool {
	if auth.IsCertificateFetchFailed(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// rejectionReason is safe to log: it never includes the token.
func rejectionReason(err error) string {
	switch {
	case auth.IsIDTokenExpired(err):
		return "expired"
	case auth.IsIDTokenRevoked(err):
		return "revoked"
	case auth.IsUserDisabled(err):
		return "user_disabled"
	case auth.IsIDTokenInvalid(err):
		return "invalid"
	}
	return "rejected"
}
