package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/id"
	"github.com/labpool/labpool/internal/shared/utils"
)

// parseIDParam reads a UUID path parameter.
func parseIDParam(c *gin.Context, name, entity string) (string, error) {
	v := c.Param(name)
	if !id.IsUUID(v) {
		return "", errors.NewValidationError("Invalid " + entity + " ID")
	}
	return v, nil
}

// bindJSON binds the body and reports failures as validation errors.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return utils.BindingError(err)
	}
	return nil
}

// shape reduces v to the fields op declares and the caller's tier may see.
func shape(c *gin.Context, s *shaping.Shaper, op access.Operation, kind shaping.Kind, v any) any {
	return s.Shape(op, shaping.TierFor(middleware.GetPrincipal(c)), kind, v)
}

func shapedList(c *gin.Context, s *shaping.Shaper, op access.Operation, kind shaping.Kind, items any, total int64, p utils.Pagination) any {
	return shape(c, s, op, kind, utils.NewListResponse(items, total, p))
}
