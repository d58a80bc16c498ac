package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/shared/constants"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

// TokenVerifier checks an access token and returns its claims.
type TokenVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

// PrincipalResolver loads the caller's live role snapshot.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID string) (*access.Principal, error)
}

type AuthMiddleware struct {
	tokens   TokenVerifier
	resolver PrincipalResolver
	logger   logger.Interface
}

func NewAuthMiddleware(tokens TokenVerifier, resolver PrincipalResolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		resolver: resolver,
		logger:   logger,
	}
}

// Authenticate attaches a principal when a valid bearer token is present.
// Requests without a token, or with one that does not verify, continue
// anonymously; routes that need a caller add RequireAuth or a Require guard.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.tokens.VerifyAccess(token)
		if err != nil {
			m.logger.Debugw("ignoring invalid access token", "error", err)
			c.Next()
			return
		}

		principal, err := m.resolver.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.IsUnauthorizedError(err) {
				m.logger.Warnw("token subject rejected", "user_id", claims.UserID, "error", err)
				c.Next()
				return
			}
			m.logger.Errorw("failed to resolve principal", "user_id", claims.UserID, "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Set(constants.ContextKeyUserID, principal.UserID())
		c.Next()
	}
}

// RequireAuth rejects requests that carry no principal.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgAuthRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetPrincipal returns the principal set by Authenticate, or nil.
func GetPrincipal(c *gin.Context) *access.Principal {
	v, ok := c.Get(constants.ContextKeyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}

// GetUserID returns the authenticated user's id, or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}
