package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"
)

// PermissionMiddleware guards routes by operation name. Requirements live
// in the access package's table, never on the route.
type PermissionMiddleware struct {
	logger logger.Interface
}

func NewPermissionMiddleware(logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{logger: logger}
}

func (m *PermissionMiddleware) Require(op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if err := access.AuthorizeOperation(principal, op, c.Param); err != nil {
			if errors.IsForbiddenError(err) {
				m.logger.Warnw("permission denied", "user_id", principal.UserID(), "operation", op)
			}
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
