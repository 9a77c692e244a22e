package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/centerthink/centerthink-api/internal/api/middleware"
)

var errMissingUserID = errors.New("user ID not found in request context")

func getUserIDFromContext(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, errMissingUserID
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, errMissingUserID
	}

	return userID, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, errors.New(name + " must be a positive integer")
	}

	return uint(id), nil
}

// parseListQuery reads the optional sort and limit query parameters. A
// leading "-" on sort means descending. limit 0 lets the store apply its
// default.
func parseListQuery(ctx *gin.Context) (string, int) {
	sortSpec := ctx.Query("sort")

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return sortSpec, limit
}

func parseUintQuery(ctx *gin.Context, name string) uint {
	raw := ctx.Query(name)
	if raw == "" {
		return 0
	}

	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}

	return uint(parsed)
}
