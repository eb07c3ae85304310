package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	jwtmw "orderup_backend/internal/platform/jwt"
)

// RequireUserID returns the authenticated user id, writing 401 when the
// request did not pass through the auth middleware.
func RequireUserID(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return 0, false
	}
	return id, true
}
