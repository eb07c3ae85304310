package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"orderup_backend/internal/shared/apperr"
)

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%s must be a positive integer: %w", name, apperr.ErrInvalidArgument)
	}
	return uint(v), nil
}
